package gpiodpin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/gpiod/device/rpi"
)

func TestPinsByName(t *testing.T) {
	p, err := PinsByName("GPIO25", "J8p18", [4]string{"GPIO23", "17", "gpio18", "GPIO22"})
	require.Nil(t, err)
	assert.Equal(t, Pins{RS: 25, E: rpi.J8p18, Data: [4]int{23, 17, 18, 22}}, p)
}

func TestPinsByNameErrors(t *testing.T) {
	tests := []struct {
		name string
		rs   string
		e    string
		data [4]string
	}{
		{"unknown rs", "bogus", "GPIO24", [4]string{"GPIO23", "GPIO17", "GPIO18", "GPIO22"}},
		{"unknown j8", "GPIO25", "J8p1", [4]string{"GPIO23", "GPIO17", "GPIO18", "GPIO22"}},
		{"out of range data", "GPIO25", "GPIO24", [4]string{"GPIO1", "GPIO17", "GPIO18", "GPIO22"}},
		{"shared line", "GPIO25", "GPIO24", [4]string{"GPIO23", "GPIO17", "GPIO25", "GPIO22"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PinsByName(tt.rs, tt.e, tt.data)
			assert.NotNil(t, err)
		})
	}
}
