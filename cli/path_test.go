package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/slab/pkg"
)

func TestUserDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		base func() (string, error)
		want string
	}{
		{
			name: "base directory",
			base: func() (string, error) { return "/xdg/config", nil },
			want: filepath.Join("/xdg/config", pkg.Name),
		},
		{
			name: "home fallback",
			base: func() (string, error) { return "", errors.New("unset") },
			want: filepath.Join(home, ".fallback", pkg.Name),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := userDir(tt.base, ".fallback"); got != tt.want {
				t.Errorf("userDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserDir_WorkingDirectory(t *testing.T) {
	t.Setenv("HOME", "")

	if _, err := os.UserHomeDir(); err == nil {
		t.Skip("home directory resolvable without $HOME")
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	got := userDir(func() (string, error) { return "", errors.New("unset") }, ".x")
	if want := filepath.Join(wd, pkg.Name); got != want {
		t.Errorf("userDir() = %q, want %q", got, want)
	}
}
