package pkg

import (
	"regexp"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "slab" {
		t.Errorf("Expected Name to be %q, got %q", "slab", Name)
	}
}

func TestDescription(t *testing.T) {
	if Description == "" {
		t.Error("Description must not be empty")
	}
}

func TestVersion(t *testing.T) {
	semver := regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)

	if v := Version(); !semver.MatchString(v) {
		t.Errorf("Version() = %q, want semantic version", v)
	}
}

func TestAuthor(t *testing.T) {
	if len(Author) == 0 {
		t.Fatal("Author must list at least one entry")
	}

	for _, a := range Author {
		if a.Name == "" || a.Email == "" {
			t.Errorf("incomplete author entry: %+v", a)
		}
	}
}
