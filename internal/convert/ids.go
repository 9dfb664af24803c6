package convert

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"jscard/internal/config"
	"jscard/internal/wire"
)

// idGenerator hands out entity map keys for one conversion call.
type idGenerator struct {
	profile  config.IdentifierProfile
	uid      string
	counters map[string]int
	used     map[string]bool
}

func newIDGenerator(profile config.IdentifierProfile, uid string) *idGenerator {
	return &idGenerator{
		profile:  profile,
		uid:      uid,
		counters: make(map[string]int),
		used:     make(map[string]bool),
	}
}

// next returns a fresh id for an entity derived from p. prefix is usually
// the property name.
func (g *idGenerator) next(prefix string, p wire.Property) string {
	if g.profile == config.ProfilePropID {
		if pid := strings.TrimSpace(p.Get(wire.ParamPropID)); pid != "" && !g.used[pid] {
			g.used[pid] = true
			return pid
		}
	}

	for {
		g.counters[prefix]++
		id := fmt.Sprintf("%s-%d", prefix, g.counters[prefix])

		if g.profile == config.ProfileUUID {
			id = uuid.NewSHA1(uuid.NameSpaceURL, []byte(g.uid+"#"+id)).String()
		}

		if !g.used[id] {
			g.used[id] = true
			return id
		}
	}
}

// recordUID derives a reproducible uid for a record without UID from the
// canonical text of its properties.
func recordUID(rec wire.Record) string {
	var b strings.Builder

	for _, p := range rec.Properties {
		if p.Group != "" {
			b.WriteString(p.Group)
			b.WriteByte('.')
		}

		b.WriteString(strings.ToUpper(p.Name))

		for _, name := range p.Params.Names() {
			b.WriteByte(';')
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(p.Params.Joined(name))
		}

		b.WriteByte(':')
		b.WriteString(p.Value)
		b.WriteByte('\n')
	}

	return "urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(b.String())).String()
}
