package json

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

type widget struct {
	Name  string
	Count int
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	r := require.New(t)

	c := NewCodec(widget{})
	data, err := c.Marshal(widget{Name: "bolt", Count: 3})
	r.NoError(err)

	v, err := c.Unmarshal(data)
	r.NoError(err)
	r.Equal(widget{Name: "bolt", Count: 3}, v)
}

func TestEncoderDecoderStream(t *testing.T) {
	r := require.New(t)

	c := NewCodec(&widget{})
	var buf bytes.Buffer

	enc := c.NewEncoder(&buf)
	r.NoError(enc.Encode(&widget{Name: "nut", Count: 7}))

	dec := c.NewDecoder(&buf)
	got, err := dec.Decode()
	r.NoError(err)
	r.Equal(&widget{Name: "nut", Count: 7}, got)
}
