package convert

import (
	"slices"
	"strings"

	"jscard/internal/altid"
	"jscard/internal/jscontact"
	"jscard/internal/wire"
)

// addressKinds maps the ADR value positions to component kinds.
var addressKinds = []string{
	jscontact.AddrPostOfficeBox,
	jscontact.AddrApartment,
	jscontact.AddrName,
	jscontact.AddrLocality,
	jscontact.AddrRegion,
	jscontact.AddrPostcode,
	jscontact.AddrCountry,
}

var addressRules = propRules{
	handled:  []string{wire.ParamLabel, wire.ParamGeo, wire.ParamTZ, wire.ParamCC},
	contexts: true,
	valid:    map[string]func(string) bool{wire.ParamTZ: validTimeZone},
}

// FullAddress joins the non-empty components in ADR order with newlines.
func FullAddress(components []jscontact.AddressComponent) string {
	parts := make([]string, 0, len(components))

	for _, kind := range addressKinds {
		for _, c := range components {
			if c.Kind == kind && c.Value != "" {
				parts = append(parts, c.Value)
			}
		}
	}

	return strings.Join(parts, "\n")
}

func (s *state) parseAddress(p indexed) (*jscontact.Address, error) {
	c, err := s.types(p, addressRules)
	if err != nil {
		return nil, err
	}

	addr := &jscontact.Address{
		Type:        "Address",
		CountryCode: strings.TrimSpace(p.Get(wire.ParamCC)),
		Coordinates: strings.TrimSpace(p.Get(wire.ParamGeo)),
		Contexts:    c.contexts,
		Pref:        prefOf(p.Property),
	}

	for i, part := range wire.SplitComponents(p.Value) {
		if i >= len(addressKinds) {
			break
		}

		for _, v := range wire.SplitList(part) {
			if v = strings.TrimSpace(wire.Unescape(v)); v != "" {
				addr.Components = append(addr.Components, jscontact.AddressComponent{Kind: addressKinds[i], Value: v})
			}
		}
	}

	if tz, ok := NormalizeTimeZone(p.Get(wire.ParamTZ)); ok {
		addr.TimeZone = tz
	}

	switch label := p.Get(wire.ParamLabel); {
	case label != "":
		addr.Full = wire.Unescape(label)
	case s.cfg.SynthesizeFullAddress:
		addr.Full = FullAddress(addr.Components)
	}

	return addr, nil
}

func mapAddress(s *state, props map[string][]indexed) error {
	addrs, err := mapEntities(s, props["ADR"], "addresses", addressRules, s.parseAddress,
		func(id string, v *jscontact.Address) { setEntity(&s.card.Addresses, id, v) })
	if err != nil {
		return err
	}

	geo, err := s.sortProps(props["GEO"])
	if err != nil {
		return err
	}

	for _, p := range geo {
		addrs = s.attach(addrs, p,
			func(a *jscontact.Address) bool { return a.Coordinates != "" },
			func(a *jscontact.Address) { a.Coordinates = strings.TrimSpace(p.Value) })

		if err := s.keep(p, propRules{}); err != nil {
			return err
		}
	}

	zones, err := s.sortProps(props["TZ"])
	if err != nil {
		return err
	}

	for _, p := range zones {
		tz, ok := NormalizeTimeZone(p.Text())
		if !ok {
			if err := s.whole(p, CodeUnparseableValue, "time zone "+p.Value+" is neither a zone name nor a UTC offset"); err != nil {
				return err
			}

			continue
		}

		addrs = s.attach(addrs, p,
			func(a *jscontact.Address) bool { return a.TimeZone != "" },
			func(a *jscontact.Address) { a.TimeZone = tz })

		if err := s.keep(p, propRules{}); err != nil {
			return err
		}
	}

	return nil
}

// attach sets a field from a standalone GEO or TZ property on the address
// sharing its group label, else on the most preferred address lacking the
// field, else on a new address.
func (s *state) attach(addrs []keyed[*jscontact.Address], p indexed, has func(*jscontact.Address) bool, set func(*jscontact.Address)) []keyed[*jscontact.Address] {
	if p.Group != "" {
		for _, a := range addrs {
			if strings.EqualFold(a.Source.Group, p.Group) && !has(a.Primary) {
				set(a.Primary)
				return addrs
			}
		}
	}

	byPref, _ := altid.SortByPreference(slices.Clone(addrs), func(a keyed[*jscontact.Address]) (int, bool) {
		return a.Pref, a.HasPref
	})

	for _, a := range byPref {
		if !has(a.Primary) {
			set(a.Primary)
			return addrs
		}
	}

	id := s.ids.next("ADR", p.Property)
	addr := &jscontact.Address{Type: "Address"}
	set(addr)
	setEntity(&s.card.Addresses, id, addr)

	return append(addrs, keyed[*jscontact.Address]{ID: id, entry: entry[*jscontact.Address]{
		Localized: altid.Localized[*jscontact.Address]{Primary: addr},
		Source:    p,
	}})
}
