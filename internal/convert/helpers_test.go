package convert

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"jscard/internal/config"
	"jscard/internal/wire"
)

const ns = "ietf.org/rfc6350/"

// prop builds a property; params are given as "NAME=value".
func prop(name, value string, params ...string) wire.Property {
	p := wire.NewProperty(name, value)

	for _, kv := range params {
		k, v, _ := strings.Cut(kv, "=")
		p = p.With(k, v)
	}

	return p
}

func grouped(group string, p wire.Property) wire.Property {
	p.Group = group
	return p
}

func record(props ...wire.Property) wire.Record {
	return wire.Record{Properties: props}
}

func newConverter(t *testing.T, mutate ...func(*config.Config)) *Converter {
	t.Helper()

	cfg := config.Default()
	for _, m := range mutate {
		m(&cfg)
	}

	c, err := New(cfg)
	require.NoError(t, err)

	return c
}

func convertRecord(t *testing.T, c *Converter, props ...wire.Property) Result {
	t.Helper()

	res, err := c.ToCard(record(props...))
	require.NoError(t, err)
	require.NotNil(t, res.Card)

	return res
}
