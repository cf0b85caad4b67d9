package exclusion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inconshreveable/log15"
)

// discardLogger returns a logger whose output is suppressed so test runs
// stay quiet.
func discardLogger() log15.Logger {
	l := log15.New()
	l.SetHandler(log15.DiscardHandler())
	return l
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exclusions.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ListForm(t *testing.T) {
	path := writeFile(t, `
excludeFromCheck:
  - 198.51.100.7
  - 203.0.113.9
`)
	set := Load(path, discardLogger())

	if set.Len() != 2 {
		t.Fatalf("Len = %d; want 2", set.Len())
	}
	for _, ip := range []string{"198.51.100.7", "203.0.113.9"} {
		if !set.Contains(ip) {
			t.Errorf("set missing %s", ip)
		}
	}
}

func TestLoad_CommaSeparatedScalar(t *testing.T) {
	path := writeFile(t, `excludeFromCheck: "198.51.100.7, 203.0.113.9"`)
	set := Load(path, discardLogger())

	if set.Len() != 2 {
		t.Fatalf("Len = %d; want 2", set.Len())
	}
	if !set.Contains("203.0.113.9") {
		t.Error("whitespace around comma-separated entries must be trimmed")
	}
}

func TestLoad_DuplicatesDeduplicated(t *testing.T) {
	path := writeFile(t, `
excludeFromCheck:
  - 198.51.100.7
  - 203.0.113.9
  - 198.51.100.7
`)
	set := Load(path, discardLogger())

	if set.Len() != 2 {
		t.Fatalf("Len = %d; want 2 after deduplication", set.Len())
	}
}

func TestLoad_AbsentFileIsEmptyAndNonFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")
	set := Load(path, discardLogger())

	if set == nil {
		t.Fatal("Load must never return a nil set")
	}
	if set.Len() != 0 {
		t.Fatalf("Len = %d; want 0 for absent file", set.Len())
	}
}

func TestLoad_MalformedFileFailsOpen(t *testing.T) {
	path := writeFile(t, "excludeFromCheck: {not valid: [")
	set := Load(path, discardLogger())

	if set.Len() != 0 {
		t.Fatalf("Len = %d; want 0 for malformed file", set.Len())
	}
}

func TestLoad_EmptyListIsEmptySet(t *testing.T) {
	path := writeFile(t, "excludeFromCheck: []")
	set := Load(path, discardLogger())

	if set.Len() != 0 {
		t.Fatalf("Len = %d; want 0", set.Len())
	}
}

func TestLoad_WrongValueKindFailsOpen(t *testing.T) {
	path := writeFile(t, `
excludeFromCheck:
  nested: map
`)
	set := Load(path, discardLogger())

	if set.Len() != 0 {
		t.Fatalf("Len = %d; want 0 when excludeFromCheck is a mapping", set.Len())
	}
}

func TestContains_ExactMatchOnly(t *testing.T) {
	set := NewSet("198.51.100.7")

	if !set.Contains("198.51.100.7") {
		t.Error("expected exact match to be contained")
	}
	if set.Contains("198.51.100.70") {
		t.Error("prefix of a longer address must not match")
	}
	if set.Contains("") {
		t.Error("empty string must not match")
	}
}
