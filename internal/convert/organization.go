package convert

import (
	"strings"

	"jscard/internal/jscontact"
	"jscard/internal/wire"
)

var orgRules = propRules{handled: []string{wire.ParamSortAs}, contexts: true}

func (s *state) parseOrganization(p indexed) (*jscontact.Organization, error) {
	c, err := s.types(p, orgRules)
	if err != nil {
		return nil, err
	}

	org := &jscontact.Organization{
		Type:     "Organization",
		SortAs:   wire.Unescape(p.Get(wire.ParamSortAs)),
		Contexts: c.contexts,
	}

	for i, part := range wire.SplitComponents(p.Value) {
		v := strings.TrimSpace(wire.Unescape(part))

		switch {
		case i == 0:
			org.Name = v
		case v != "":
			org.Units = append(org.Units, jscontact.OrgUnit{Type: "OrgUnit", Name: v})
		}
	}

	return org, nil
}

func mapOrganization(s *state, props map[string][]indexed) error {
	orgs, err := mapEntities(s, props["ORG"], "organizations", orgRules, s.parseOrganization,
		func(id string, v *jscontact.Organization) { setEntity(&s.card.Orgs, id, v) })
	if err != nil {
		return err
	}

	orgByGroup := make(map[string]string)

	for _, o := range orgs {
		if g := strings.ToLower(o.Source.Group); g != "" {
			if _, seen := orgByGroup[g]; !seen {
				orgByGroup[g] = o.ID
			}
		}
	}

	for _, name := range []string{"TITLE", "ROLE"} {
		kind := jscontact.TitleKindTitle
		if name == "ROLE" {
			kind = jscontact.TitleKindRole
		}

		titles, err := mapEntities(s, props[name], "titles", propRules{},
			func(p indexed) (*jscontact.Title, error) {
				return &jscontact.Title{Type: "Title", Name: p.Text(), Kind: kind}, nil
			},
			func(id string, v *jscontact.Title) { setEntity(&s.card.Titles, id, v) })
		if err != nil {
			return err
		}

		for _, t := range titles {
			if orgID, ok := orgByGroup[strings.ToLower(t.Source.Group)]; ok {
				t.Primary.OrganizationID = orgID
			}
		}
	}

	return nil
}
