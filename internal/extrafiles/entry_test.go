package extrafiles

import (
	"testing"

	siterrors "git.home.luguber.info/inful/extrafiles/internal/errors"
)

func TestValidateEntriesAcceptsWellFormed(t *testing.T) {
	entries := []SourceEntry{
		{Src: "../README.md", Dest: "extras/README.md"},
		{Src: "../assets/**", Dest: "extras/assets/"},
		{Src: "/abs/path/file.txt", Dest: "extras/file.txt"},
		{Src: "icons/*.svg", Dest: "extras/icons/"},
	}
	if err := ValidateEntries(entries); err != nil {
		t.Fatalf("ValidateEntries: %v", err)
	}
}

func TestValidateEntriesGlobRequiresDirectoryDest(t *testing.T) {
	entries := []SourceEntry{{Src: "../assets/*.svg", Dest: "extras/icons"}}
	err := ValidateEntries(entries)
	if err == nil {
		t.Fatalf("expected error for glob src with non-directory dest")
	}
	if !siterrors.IsCategory(err, siterrors.CategoryValidation) {
		t.Fatalf("expected validation category, got: %v", err)
	}
}

func TestValidateEntriesEveryMalformedEntryReported(t *testing.T) {
	cases := []struct {
		name    string
		entries []SourceEntry
	}{
		{"empty src", []SourceEntry{{Src: "", Dest: "extras/x.txt"}}},
		{"empty dest", []SourceEntry{{Src: "x.txt", Dest: ""}}},
		{"absolute dest", []SourceEntry{{Src: "x.txt", Dest: "/extras/x.txt"}}},
		{"glob without trailing slash", []SourceEntry{{Src: "*.txt", Dest: "extras"}}},
		{"malformed after valid", []SourceEntry{
			{Src: "ok.txt", Dest: "extras/ok.txt"},
			{Src: "bad/**", Dest: "extras/bad"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateEntries(tc.entries); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestIsGlobDetection(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"../README.md", false},
		{"../assets/**", true},
		{"file?.txt", true},
		{"file[ab].txt", true},
		{"plain/dir/file.txt", false},
	}
	for _, tc := range cases {
		if got := (SourceEntry{Src: tc.src}).IsGlob(); got != tc.want {
			t.Errorf("IsGlob(%q) = %v, want %v", tc.src, got, tc.want)
		}
	}
}

func TestBackslashDestNormalized(t *testing.T) {
	e := SourceEntry{Src: "notes.txt", Dest: `external\notes.txt`}
	if got := e.normalizedDest(); got != "external/notes.txt" {
		t.Fatalf("normalizedDest = %q, want external/notes.txt", got)
	}
}
