package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecsAgree(t *testing.T) {
	doc := map[string]any{
		"version": []int{1, 0, 0},
		"ranges":  []float32{-1.5, 2.25},
		"name":    "meta",
	}

	std, err := (JSON{}).Marshal(doc)
	require.NoError(t, err)
	fast, err := (GoJSON{}).Marshal(doc)
	require.NoError(t, err)

	assert.JSONEq(t, string(std), string(fast))
}

func TestRoundTrip(t *testing.T) {
	type payload struct {
		Count int       `json:"count"`
		Mins  []float32 `json:"mins"`
	}
	in := payload{Count: 7, Mins: []float32{-1, 0, 1}}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		data, err := c.Marshal(in)
		require.NoError(t, err, c.Name())

		var out payload
		require.NoError(t, c.Unmarshal(data, &out), c.Name())
		assert.Equal(t, in, out, c.Name())
	}
}
