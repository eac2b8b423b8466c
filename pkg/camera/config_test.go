package camera

import "testing"

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"negative device", func(c *Config) { c.DeviceID = -1 }},
		{"tiny width", func(c *Config) { c.Width = 100 }},
		{"tiny height", func(c *Config) { c.Height = 0 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"absurd fps", func(c *Config) { c.FPS = 500 }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mod(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error for %+v", tt.name, cfg)
		}
	}
}
