package textclean

import "testing"

func TestClean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"collapse newlines", "a\n\n\n\nb", "a\n\nb"},
		{"collapse spaces", "a    b", "a b"},
		{"ocr pipe repair", "|ncident report", "Incident report"},
		{"hyphen rejoin", "mainte-\nnance schedule", "maintenance schedule"},
		{"hyphen rejoin with trailing space", "mainte- \nnance schedule", "maintenance schedule"},
		{"zero width stripped", "safe​ty", "safety"},
		{"line trim", "  leading\ntrailing  ", "leading\ntrailing"},
		{"mixed", "Work   order-\nform\n\n\n\nfor |nspection", "Work orderform\n\nfor Inspection"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Clean(tc.in)
			if got != tc.want {
				t.Errorf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"a    b\n\n\n\nc-\nd",
		"mainte- \nnance schedule",
		"work or- \t\n  der",
		"  | broken |​ lines  \n\n\n mixed \t content ",
		"മലയാളം ടെക്സ്റ്റ്\n\n\nരണ്ടാം വരി",
	}

	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
