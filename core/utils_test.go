package core

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: " \t\n  ", want: ""},
		{name: "already canonical", in: "what is x?", want: "what is x?"},
		{name: "mixed case", in: "What Is X?", want: "what is x?"},
		{name: "runs of whitespace", in: "  what\tis \n  X?  ", want: "what is x?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.in); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{"", "  ", "What is   X? ", "a\tb\nc", "ALL CAPS"}
	for _, in := range inputs {
		once := NormalizeText(in)
		if twice := NormalizeText(once); twice != once {
			t.Errorf("NormalizeText not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestCleanString(t *testing.T) {
	if got := CleanString("  Hey  "); got != "Hey" {
		t.Errorf("CleanString() = %q; want %q", got, "Hey")
	}
	if got := CleanString("  Hey  ", true); got != "hey" {
		t.Errorf("CleanString(lower) = %q; want %q", got, "hey")
	}
}
