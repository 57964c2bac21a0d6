package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

type initTestCLI struct {
	LogLevel  string   `default:"info"`
	Pretty    bool     `default:"true" negatable:""`
	Depth     int      `default:"256"`
	Empty     string   ``
	Tags      []string ``
	PprofMode string   `default:"cpu"`
	Secret    string   `default:"x" hidden:""`

	Init Init `cmd:""`
}

func initContext(t *testing.T, confPath string, args ...string) context.Context {
	t.Helper()

	var cli initTestCLI

	parser, err := kong.New(&cli, kong.Name("slab"), kong.Vars{ConfigIdentifier: confPath})
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse(append(args, "init"))
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(context.Background(), kctx)
}

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string)
		wantErr error
	}{
		{
			name: "create_new_config",
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "fail_without_force",
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: ErrFileExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "slab", "config")

			if tt.setup != nil {
				if err := os.MkdirAll(filepath.Dir(confPath), 0o700); err != nil {
					t.Fatal(err)
				}

				tt.setup(t, confPath)
			}

			err := (&Init{Force: tt.force}).Run(initContext(t, confPath))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrWriteConfig) {
					t.Fatalf("Init.Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Init.Run() error = %v", err)
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			if !strings.HasPrefix(string(content), "# slab configuration") {
				t.Errorf("config missing header comment:\n%s", content)
			}

			var m map[string]any
			if err := yaml.Unmarshal(content, &m); err != nil {
				t.Errorf("generated config is not valid YAML: %v", err)
			}
		})
	}
}

// TestInitSettings tests which flags are written and in what order.
func TestInitSettings(t *testing.T) {
	t.Parallel()

	ctx := initContext(t, "unused", "--log-level=debug", "--no-pretty", "--tags=a,b")

	got := (&Init{}).settings(kongContextFrom(ctx))

	var keys []string
	for _, item := range got {
		keys = append(keys, item.Key.(string))
	}

	if want := "log-level,pretty,depth,tags"; strings.Join(keys, ",") != want {
		t.Errorf("keys = %s, want %s", strings.Join(keys, ","), want)
	}

	out, err := yaml.Marshal(got)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"log-level: debug", "pretty: false", "depth: 256", "- a"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("YAML missing %q:\n%s", want, out)
		}
	}
}

// TestConfigValue tests conversion of flag values with different types.
func TestConfigValue(t *testing.T) {
	t.Parallel()

	type level string

	tests := []struct {
		name   string
		in     any
		want   any
		wantOK bool
	}{
		{name: "bool", in: true, want: true, wantOK: true},
		{name: "string", in: "x", want: "x", wantOK: true},
		{name: "named_string", in: level("debug"), want: "debug", wantOK: true},
		{name: "empty_string", in: ""},
		{name: "int", in: 5, want: int64(5), wantOK: true},
		{name: "uint", in: uint8(7), want: uint64(7), wantOK: true},
		{name: "float", in: 1.5, want: 1.5, wantOK: true},
		{name: "nil", in: nil},
		{name: "empty_slice", in: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := configValue(tt.in)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("configValue(%#v) = %#v, %v; want %#v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	got, ok := configValue([]int{1, 2})
	if s, _ := got.([]any); !ok || len(s) != 2 || s[1] != int64(2) {
		t.Errorf("configValue([]int) = %#v, %v", got, ok)
	}
}
