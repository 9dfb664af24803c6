package convert

import (
	"strconv"
	"strings"

	"jscard/internal/jscontact"
	"jscard/internal/wire"
)

// resourceKind describes where a URI-valued property is stored.
type resourceKind struct {
	category string
	typ      string
	kind     string
	field    func(*jscontact.Card) *map[string]*jscontact.Resource
}

func links(c *jscontact.Card) *map[string]*jscontact.Resource       { return &c.Links }
func media(c *jscontact.Card) *map[string]*jscontact.Resource       { return &c.Media }
func cryptoKeys(c *jscontact.Card) *map[string]*jscontact.Resource  { return &c.CryptoKeys }
func calendars(c *jscontact.Card) *map[string]*jscontact.Resource   { return &c.Calendars }
func directories(c *jscontact.Card) *map[string]*jscontact.Resource { return &c.Directories }

// resourceOrder lists the resource properties in mapping order.
var resourceOrder = []string{
	"URL", "CONTACT-URI", "PHOTO", "LOGO", "SOUND", "KEY", "CALURI", "FBURL", "ORG-DIRECTORY", "SOURCE",
}

var resources = map[string]resourceKind{
	"URL":           {"links", "Link", "", links},
	"CONTACT-URI":   {"links", "Link", "contact", links},
	"PHOTO":         {"media", "Media", "photo", media},
	"LOGO":          {"media", "Media", "logo", media},
	"SOUND":         {"media", "Media", "sound", media},
	"KEY":           {"cryptoKeys", "CryptoKey", "", cryptoKeys},
	"CALURI":        {"calendars", "Calendar", "calendar", calendars},
	"FBURL":         {"calendars", "Calendar", "freeBusy", calendars},
	"ORG-DIRECTORY": {"directories", "Directory", "directory", directories},
	"SOURCE":        {"directories", "Directory", "entry", directories},
}

var resourceRules = propRules{
	handled:  []string{wire.ParamMediaType, wire.ParamIndex},
	contexts: true,
	valid:    map[string]func(string) bool{wire.ParamIndex: positiveInt},
}

func mapResource(s *state, props map[string][]indexed) error {
	for _, name := range resourceOrder {
		rk := resources[name]

		_, err := mapEntities(s, props[name], rk.category, resourceRules,
			func(p indexed) (*jscontact.Resource, error) {
				c, err := s.types(p, resourceRules)
				if err != nil {
					return nil, err
				}

				r := &jscontact.Resource{
					Type:      rk.typ,
					Kind:      rk.kind,
					URI:       strings.TrimSpace(p.Text()),
					MediaType: p.Get(wire.ParamMediaType),
					Contexts:  c.contexts,
					Pref:      prefOf(p.Property),
				}

				if n, err := strconv.Atoi(strings.TrimSpace(p.Get(wire.ParamIndex))); err == nil && n > 0 {
					r.ListAs = n
				}

				return r, nil
			},
			func(id string, v *jscontact.Resource) { setEntity(rk.field(s.card), id, v) })
		if err != nil {
			return err
		}
	}

	return nil
}
