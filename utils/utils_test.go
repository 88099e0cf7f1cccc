package utils

import (
	"path/filepath"
	"testing"
)

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Day 1: Whiterun", "Day 1_ Whiterun"},
		{"  a/b\\c  ", "a_b_c"},
		{"", "journal"},
		{"   ", "journal"},
	}
	for _, tt := range tests {
		if got := CleanFileName(tt.in); got != tt.want {
			t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	if got := ResolvePath(dir, "book.json"); got != filepath.Join(dir, "book.json") {
		t.Errorf("relative: %q", got)
	}
	abs := filepath.Join(dir, "x", "y.json")
	if got := ResolvePath("/elsewhere", abs); got != abs {
		t.Errorf("absolute: %q", got)
	}
	if got := ResolvePath(dir, ""); got != "" {
		t.Errorf("empty: %q", got)
	}
}

func TestDefaultDataDir(t *testing.T) {
	if DefaultDataDir() == "" {
		t.Fatal("empty data dir")
	}
}
