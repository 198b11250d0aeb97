package shared

import "testing"

func TestStripQuotes(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no quotes",
			in:   "Midnight City",
			want: "Midnight City",
		},
		{
			name: "embedded quotes",
			in:   `The "Deluxe" Edition`,
			want: "The Deluxe Edition",
		},
		{
			name: "only quotes",
			in:   `""`,
			want: "",
		},
		{
			name: "single quotes untouched",
			in:   "Don't Stop",
			want: "Don't Stop",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := StripQuotes(tt.in)
			if got != tt.want {
				t.Errorf("StripQuotes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTitleCase(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "single word",
			in:   "techno",
			want: "Techno",
		},
		{
			name: "multiple words",
			in:   "deep house",
			want: "Deep House",
		},
		{
			name: "already cased",
			in:   "Drum And Bass",
			want: "Drum And Bass",
		},
		{
			name: "extra whitespace collapsed",
			in:   "  lo   fi  ",
			want: "Lo Fi",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := TitleCase(tt.in)
			if got != tt.want {
				t.Errorf("TitleCase() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty IDs")
	}

	if a == b {
		t.Error("expected unique IDs")
	}
}
