package mcp3008

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConverter struct {
	values [Channels]uint16
	reads  []int
	err    error
	closed bool
}

func (c *fakeConverter) Read(ch int) (uint16, error) {
	c.reads = append(c.reads, ch)
	if c.err != nil {
		return 0, c.err
	}
	return c.values[ch], nil
}

func (c *fakeConverter) Close() error {
	c.closed = true
	return nil
}

func TestRead(t *testing.T) {
	c := &fakeConverter{values: [Channels]uint16{0, 1, 512, 1023, 0x2AA, 0x155, 7, 1000}}
	d := New(c)
	for ch := 0; ch < Channels; ch++ {
		v, err := d.Read(ch)
		require.Nil(t, err)
		assert.Equal(t, c.values[ch], v, "ch%d", ch)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, c.reads)
}

func TestReadInvalidChannel(t *testing.T) {
	c := &fakeConverter{}
	d := New(c)
	for _, ch := range []int{-1, Channels, 99} {
		_, err := d.Read(ch)
		assert.True(t, errors.Is(err, ErrChannel), "ch%d", ch)
	}
	assert.Empty(t, c.reads, "invalid channels never reach the bus")
}

func TestReadOutOfRange(t *testing.T) {
	c := &fakeConverter{}
	c.values[2] = 4095
	_, err := New(c).Read(2)
	assert.True(t, errors.Is(err, ErrRange))
}

func TestReadLineError(t *testing.T) {
	c := &fakeConverter{err: errors.New("line gone")}
	_, err := New(c).Read(0)
	assert.True(t, errors.Is(err, c.err))
}

func TestClose(t *testing.T) {
	c := &fakeConverter{}
	d := New(c)
	require.Nil(t, d.Close())
	assert.True(t, c.closed)
	assert.Equal(t, ErrClosed, d.Close())
	_, err := d.Read(0)
	assert.Equal(t, ErrClosed, err)
}
