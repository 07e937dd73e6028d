package main

import (
	"testing"
	"time"

	"github.com/flavioheleno/hd44780/thermometer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/config"
	"github.com/warthog618/config/dict"
	"periph.io/x/conn/v3/physic"
)

func testConfig(overrides map[string]interface{}) *config.Config {
	m := map[string]interface{}{}
	for k, v := range defaults {
		m[k] = v
	}
	for k, v := range overrides {
		m[k] = v
	}
	return config.New(dict.New(dict.WithMap(m)))
}

func TestMonitorConfigDefaults(t *testing.T) {
	mc, err := monitorConfig(testConfig(nil))
	require.Nil(t, err)
	assert.Equal(t, 0, mc.Channel)
	assert.Equal(t, uint16(1023), mc.FullScale)
	assert.Equal(t, 5*physic.Volt, mc.Vref)
	assert.Equal(t, []float64{0, 100}, mc.Coeffs)
	assert.Equal(t, time.Second, mc.Period)
	assert.Equal(t, 1500*time.Millisecond, mc.SplashTime)
	assert.Equal(t, thermometer.DefaultConfig.Header, mc.Header)
	assert.Equal(t, thermometer.ShowTemperature, mc.Mode)
}

func TestMonitorConfigOverrides(t *testing.T) {
	mc, err := monitorConfig(testConfig(map[string]interface{}{
		"channel":   3,
		"fullscale": 4095,
		"vref":      "3.3V",
		"coeffs":    "-50, 100",
		"period":    "250ms",
		"mode":      "raw",
	}))
	require.Nil(t, err)
	assert.Equal(t, 3, mc.Channel)
	assert.Equal(t, uint16(4095), mc.FullScale)
	assert.Equal(t, 3300*physic.MilliVolt, mc.Vref)
	assert.Equal(t, []float64{-50, 100}, mc.Coeffs)
	assert.Equal(t, 250*time.Millisecond, mc.Period)
	assert.Equal(t, thermometer.ShowRaw, mc.Mode)
}

func TestMonitorConfigErrors(t *testing.T) {
	patterns := []struct {
		name string
		key  string
		val  interface{}
	}{
		{"zero fullscale", "fullscale", 0},
		{"huge fullscale", "fullscale", 70000},
		{"bad vref", "vref", "five"},
		{"bad coeffs", "coeffs", "1,x"},
		{"empty coeffs", "coeffs", " , "},
		{"bad mode", "mode", "kelvin"},
	}
	for _, p := range patterns {
		t.Run(p.name, func(t *testing.T) {
			_, err := monitorConfig(testConfig(map[string]interface{}{p.key: p.val}))
			assert.NotNil(t, err)
		})
	}
}

func TestParseCoeffs(t *testing.T) {
	cc, err := parseCoeffs("0.5,2,-1e-3")
	require.Nil(t, err)
	assert.Equal(t, []float64{0.5, 2, -1e-3}, cc)
}

func TestLogLevel(t *testing.T) {
	l, err := logLevel("debug")
	require.Nil(t, err)
	assert.Equal(t, "DEBUG", l.String())

	_, err = logLevel("chatty")
	assert.NotNil(t, err)
}
