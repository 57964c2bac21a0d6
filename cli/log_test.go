package cli

import (
	"testing"

	"github.com/ardnew/slab/log"
)

func TestLogConfigScan(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "assigned values",
			args: []string{"--log-level=debug", "--log-format=text"},
			want: logConfig{Level: "debug", Format: "text"},
		},
		{
			name: "separate values",
			args: []string{"compile", "--log-level", "warn", "--log-time-layout", "Kitchen"},
			want: logConfig{Level: "warn", TimeLayout: "Kitchen"},
		},
		{
			name: "missing value",
			args: []string{"--log-level", "--log-caller"},
			want: logConfig{Caller: true},
		},
		{
			name: "negated booleans",
			args: []string{"--no-log-pretty", "--log-caller=false"},
			want: logConfig{},
		},
		{
			name: "explicit booleans",
			args: []string{"--log-pretty=true", "--no-log-caller=false"},
			want: logConfig{Pretty: true, Caller: true},
		},
		{
			name: "stops at terminator",
			args: []string{"--", "--log-level=error"},
			want: logConfig{},
		},
		{
			name: "ignores unrelated flags",
			args: []string{"--log", "-t", "page.html", "--logger=x"},
			want: logConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got logConfig

			got.scan(tt.args)

			if got != tt.want {
				t.Errorf("scan(%q) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestLogConfigScan_ConfiguresLogger(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	var f logConfig

	f.scan([]string{"--log-level=trace", "--log-format", "text"})

	if got := log.Default().Level(); got != log.LevelTrace {
		t.Errorf("level = %v, want %v", got, log.LevelTrace)
	}

	if got := log.Default().Format(); got != log.FormatText {
		t.Errorf("format = %v, want %v", got, log.FormatText)
	}
}

func TestLogConfigVars(t *testing.T) {
	vars := (&logConfig{}).vars()

	if got, want := vars["logLevelEnum"], "trace,debug,info,warn,error"; got != want {
		t.Errorf("logLevelEnum = %q, want %q", got, want)
	}

	if got, want := vars["logFormatEnum"], "json,text"; got != want {
		t.Errorf("logFormatEnum = %q, want %q", got, want)
	}
}
