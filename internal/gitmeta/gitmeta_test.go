package gitmeta

import "testing"

func TestLookupOutsideRepository(t *testing.T) {
	info := Lookup(t.TempDir())
	if info.Branch != "" || info.Commit != "" {
		t.Fatalf("expected zero Info outside a repository, got %+v", info)
	}
}
