package group

import (
	"errors"
	"fmt"

	"jscard/internal/jscontact"
)

// ErrMissingGroupMarker is returned for a card that lists members but has
// no kind.
var ErrMissingGroupMarker = errors.New("members present without kind marker")

// Entry is one top-level output item: exactly one of Card or Group is set.
type Entry struct {
	Card  *jscontact.Card
	Group *Group
}

// UID returns the uid of the entry.
func (e Entry) UID() string {
	if e.Group != nil {
		return e.Group.UID
	}

	return e.Card.UID
}

// Group is a group card with its members resolved.
type Group struct {
	UID     string
	Name    string
	Card    *jscontact.Card
	Members []Member
}

// Member is one resolved member. A uid outside the batch resolves to a
// placeholder card carrying only the uid.
type Member struct {
	UID         string
	Card        *jscontact.Card
	Placeholder bool
}

// Resolve builds the top-level output of a batch:
//   - cards referenced as members of a group are only reachable through it,
//   - a group without members is reclassified as an organization,
//   - every other group becomes a Group with members looked up by uid.
//
// Input order is kept and a uid appears at most once at top level. Input
// cards are never modified.
func Resolve(cards []*jscontact.Card) ([]Entry, error) {
	arena := make(map[string]int, len(cards))
	referenced := make(map[string]bool)

	for i, c := range cards {
		if c == nil {
			return nil, fmt.Errorf("card #%d is nil", i+1)
		}

		if _, seen := arena[c.UID]; !seen {
			arena[c.UID] = i
		}

		if len(c.Members) > 0 && c.Kind == "" {
			return nil, fmt.Errorf("card %s: %w", c.UID, ErrMissingGroupMarker)
		}

		if c.IsGroup() {
			for _, uid := range c.Members {
				referenced[uid] = true
			}
		}
	}

	out := make([]Entry, 0, len(cards))
	emitted := make(map[string]bool, len(cards))

	for _, c := range cards {
		if emitted[c.UID] {
			continue
		}

		switch {
		case c.IsGroup() && len(c.Members) == 0:
			org := c.Clone()
			org.Kind = jscontact.KindOrg
			out = append(out, Entry{Card: org})
		case c.IsGroup():
			out = append(out, Entry{Group: newGroup(c, cards, arena)})
		case referenced[c.UID]:
			continue
		default:
			out = append(out, Entry{Card: c})
		}

		emitted[c.UID] = true
	}

	return out, nil
}

func newGroup(c *jscontact.Card, cards []*jscontact.Card, arena map[string]int) *Group {
	g := &Group{UID: c.UID, Card: c, Members: make([]Member, 0, len(c.Members))}
	if c.Name != nil {
		g.Name = c.Name.Full
	}

	for _, uid := range c.Members {
		i, ok := arena[uid]
		if !ok {
			g.Members = append(g.Members, Member{UID: uid, Card: jscontact.NewCard(uid), Placeholder: true})
			continue
		}

		g.Members = append(g.Members, Member{UID: uid, Card: cards[i]})
	}

	return g
}
