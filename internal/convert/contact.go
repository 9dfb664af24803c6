package convert

import (
	"strings"

	"jscard/internal/jscontact"
	"jscard/internal/vocab"
	"jscard/internal/wire"
)

var phoneRules = propRules{
	contexts: true,
	features: vocab.PhoneFeatures,
	aliases:  map[string]string{"cell": "mobile"},
}

var contextRules = propRules{contexts: true}

var onlineRules = propRules{
	handled:  []string{wire.ParamService, wire.ParamUsername},
	contexts: true,
}

func mapPhone(s *state, props map[string][]indexed) error {
	_, err := mapEntities(s, props["TEL"], "phones", phoneRules,
		func(p indexed) (*jscontact.Phone, error) {
			c, err := s.types(p, phoneRules)
			if err != nil {
				return nil, err
			}

			return &jscontact.Phone{
				Type:     "Phone",
				Number:   strings.TrimSpace(p.Text()),
				Features: c.features,
				Contexts: c.contexts,
				Pref:     prefOf(p.Property),
			}, nil
		},
		func(id string, v *jscontact.Phone) { setEntity(&s.card.Phones, id, v) })

	return err
}

func mapEmail(s *state, props map[string][]indexed) error {
	_, err := mapEntities(s, props["EMAIL"], "emails", contextRules,
		func(p indexed) (*jscontact.EmailAddress, error) {
			c, err := s.types(p, contextRules)
			if err != nil {
				return nil, err
			}

			return &jscontact.EmailAddress{
				Type:     "EmailAddress",
				Address:  strings.TrimSpace(p.Text()),
				Contexts: c.contexts,
				Pref:     prefOf(p.Property),
			}, nil
		},
		func(id string, v *jscontact.EmailAddress) { setEntity(&s.card.Emails, id, v) })

	return err
}

func mapOnlineService(s *state, props map[string][]indexed) error {
	for _, name := range []string{"IMPP", "SOCIALPROFILE"} {
		_, err := mapEntities(s, props[name], "onlineServices", onlineRules,
			func(p indexed) (*jscontact.OnlineService, error) {
				c, err := s.types(p, onlineRules)
				if err != nil {
					return nil, err
				}

				svc := &jscontact.OnlineService{
					Type:     "OnlineService",
					Service:  wire.Unescape(p.Get(wire.ParamService)),
					User:     wire.Unescape(p.Get(wire.ParamUsername)),
					Contexts: c.contexts,
					Pref:     prefOf(p.Property),
				}

				if p.Name == "SOCIALPROFILE" && p.ValueType() == "text" {
					svc.User = p.Text()
				} else {
					svc.URI = strings.TrimSpace(p.Text())
				}

				return svc, nil
			},
			func(id string, v *jscontact.OnlineService) { setEntity(&s.card.OnlineServices, id, v) })
		if err != nil {
			return err
		}
	}

	return nil
}

func mapLanguage(s *state, props map[string][]indexed) error {
	_, err := mapEntities(s, props["LANG"], "preferredLanguages", contextRules,
		func(p indexed) (*jscontact.LanguagePref, error) {
			c, err := s.types(p, contextRules)
			if err != nil {
				return nil, err
			}

			return &jscontact.LanguagePref{
				Type:     "LanguagePref",
				Language: s.canonicalLanguage(strings.TrimSpace(p.Text()), p.Name),
				Contexts: c.contexts,
				Pref:     prefOf(p.Property),
			}, nil
		},
		func(id string, v *jscontact.LanguagePref) { setEntity(&s.card.PreferredLanguages, id, v) })

	return err
}

func mapScheduling(s *state, props map[string][]indexed) error {
	_, err := mapEntities(s, props["CALADRURI"], "schedulingAddresses", contextRules,
		func(p indexed) (*jscontact.SchedulingAddress, error) {
			c, err := s.types(p, contextRules)
			if err != nil {
				return nil, err
			}

			return &jscontact.SchedulingAddress{
				Type:     "SchedulingAddress",
				URI:      strings.TrimSpace(p.Text()),
				Contexts: c.contexts,
				Pref:     prefOf(p.Property),
			}, nil
		},
		func(id string, v *jscontact.SchedulingAddress) { setEntity(&s.card.SchedulingAddresses, id, v) })

	return err
}
