package cli

import (
	"testing"
)

func TestLogScanRecognizesFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "assigned values",
			args: []string{"--log-level=debug", "--log-format=json"},
			want: logConfig{Level: "debug", Format: "json"},
		},
		{
			name: "separate values",
			args: []string{"--log-level", "trace", "translate"},
			want: logConfig{Level: "trace"},
		},
		{
			name: "boolean flags",
			args: []string{"--log-color", "--log-caller=false"},
			want: logConfig{Color: true, Caller: false},
		},
		{
			name: "negated boolean",
			args: []string{"--log-color", "--no-log-color"},
			want: logConfig{Color: false},
		},
		{
			name: "unrelated flags ignored",
			args: []string{"--indent", "4", "conf.edu"},
			want: logConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg logConfig

			cfg.scan(tt.args)

			if cfg.Level != tt.want.Level {
				t.Errorf("Level = %q, want %q", cfg.Level, tt.want.Level)
			}

			if cfg.Format != tt.want.Format {
				t.Errorf("Format = %q, want %q", cfg.Format, tt.want.Format)
			}

			if cfg.Color != tt.want.Color {
				t.Errorf("Color = %v, want %v", cfg.Color, tt.want.Color)
			}

			if cfg.Caller != tt.want.Caller {
				t.Errorf("Caller = %v, want %v", cfg.Caller, tt.want.Caller)
			}
		})
	}
}
