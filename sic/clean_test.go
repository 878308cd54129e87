package sic

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "html entity",
			in:   "hunting, trapping &amp; related service activities",
			want: "hunting, trapping & related service activities",
		},
		{
			name: "cross reference with comma",
			in:   "This class excludes farming of sea urchins, see ##03.21",
			want: "This class excludes farming of sea urchins",
		},
		{
			name: "cross reference to division",
			in:   "For organic farming see division ##01",
			want: "For organic farming",
		},
		{
			name: "cross reference to subclass",
			in:   "retail sale of beverages, see ##47.25/1",
			want: "retail sale of beverages",
		},
		{
			name: "bare code marker",
			in:   "growing of cereals ##01.11",
			want: "growing of cereals ",
		},
		{
			name: "case insensitive",
			in:   "processing of tea, See ##10.83",
			want: "processing of tea",
		},
		{
			name: "multiple references",
			in:   "see divisions ##46 and ##47",
			want: " and ",
		},
		{
			name: "entity inside reference text",
			in:   "wholesale &amp; retail, see ##46",
			want: "wholesale & retail",
		},
		{
			name: "clean text untouched",
			in:   "growing of rice",
			want: "growing of rice",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
