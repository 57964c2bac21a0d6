package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
)

// setupDirs points the config and cache directories at a temp directory.
// Both are resolved once per process, so every test calling Run shares it.
func setupDirs(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))

	return configDir()
}

func TestRun(t *testing.T) {
	dir := setupDirs(t)
	src := t.TempDir()

	tmpl := filepath.Join(src, "page.html")
	if err := os.WriteFile(tmpl, []byte("<p class=\"!{kind}!\">!{name}!</p>"), 0o600); err != nil {
		t.Fatal(err)
	}

	data := filepath.Join(src, "data.yaml")
	if err := os.WriteFile(data, []byte("name: slab\nkind: tool\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	noExit := func(code int) { panic(fmt.Sprintf("unexpected exit(%d)", code)) }

	t.Run("compile", func(t *testing.T) {
		out := filepath.Join(src, "out.html")

		err := Run(context.Background(), noExit,
			"--log-level=error", "compile", "-t", tmpl, "-d", data, "-o", out)
		if err != nil {
			t.Fatal(err)
		}

		got, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}

		if want := "<p class=\"tool\">slab</p>\n"; string(got) != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("config file", func(t *testing.T) {
		// A config that sets the output path for the compile command.
		cfg := filepath.Join(dir, baseConfig)
		out := filepath.Join(src, "configured.html")

		if err := os.WriteFile(cfg, []byte("output: "+out+"\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { os.Remove(cfg) })

		err := Run(context.Background(), noExit,
			"--log-level=error", "compile", "-t", tmpl, "-d", data)
		if err != nil {
			t.Fatal(err)
		}

		if _, err := os.Stat(out); err != nil {
			t.Errorf("config output not used: %v", err)
		}
	})

	t.Run("init", func(t *testing.T) {
		err := Run(context.Background(), noExit, "--log-level=warn", "init", "--force")
		if err != nil {
			t.Fatal(err)
		}

		if _, err := os.Stat(filepath.Join(dir, baseConfig)); err != nil {
			t.Errorf("init wrote nothing: %v", err)
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		err := Run(context.Background(), noExit, "--log-level=error", "--bogus")
		if err == nil {
			t.Fatal("Run() with unknown flag succeeded")
		}
	})
}

func TestDefaultCommand(t *testing.T) {
	var cli CLI

	parser, err := kong.New(&cli,
		kong.Exit(func(code int) { panic(fmt.Sprintf("unexpected exit(%d)", code)) }),
		kong.Vars{"version": "0.0.0"}.
			CloneWith(cli.Log.vars()).
			CloneWith(cli.Pprof.vars()),
	)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	if got := ktx.Command(); got != "compile" {
		t.Errorf("default command = %q, want compile", got)
	}

	if cli.Compile.Template != "-" || cli.Compile.Output != "-" {
		t.Errorf("compile defaults = %q/%q, want stdin/stdout",
			cli.Compile.Template, cli.Compile.Output)
	}
}
