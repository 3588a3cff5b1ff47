package sources

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseCZK(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{name: "space separated", in: "1 200 000 Kč", want: 1_200_000},
		{name: "dot separated with dash suffix", in: "1.200.000,-", want: 1_200_000},
		{name: "million shorthand", in: "2,5 mil. Kč", want: 2_500_000},
		{name: "plain number", in: "85000", want: 85_000},
		{name: "prefixed text", in: "do 100 000 Kč", want: 100_000},
		{name: "nbsp separators", in: "3 500 000 Kč", want: 3_500_000},
		{name: "no amount", in: "dohodou", want: 0},
		{name: "empty", in: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCZK(tt.in))
		})
	}
}

func TestParseCzechDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			name: "spaced czech format",
			in:   "31. 12. 2026",
			want: time.Date(2026, 12, 31, 0, 0, 0, 0, pragueTZ),
		},
		{
			name: "compact czech format",
			in:   "1.7.2026",
			want: time.Date(2026, 7, 1, 0, 0, 0, 0, pragueTZ),
		},
		{
			name: "iso format",
			in:   "2026-09-15",
			want: time.Date(2026, 9, 15, 0, 0, 0, 0, pragueTZ),
		},
		{
			name: "embedded in label",
			in:   "Lhůta pro podání nabídek: 15. 10. 2026 v 10:00",
			want: time.Date(2026, 10, 15, 0, 0, 0, 0, pragueTZ),
		},
		{
			name: "garbage",
			in:   "co nejdříve",
			want: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(ParseCzechDate(tt.in)), "got %v", ParseCzechDate(tt.in))
		})
	}
}

func TestCleanSpace(t *testing.T) {
	assert.Equal(t, "Novák a syn", CleanSpace("  Novák a\n\tsyn  "))
	assert.Equal(t, "", CleanSpace("   "))
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t, "https://portal.cz/d/1", ResolveURL("https://portal.cz", "/d/1"))
	assert.Equal(t, "https://portal.cz/d/1", ResolveURL("https://portal.cz/", "d/1"))
	assert.Equal(t, "https://jinde.cz/x", ResolveURL("https://portal.cz", "https://jinde.cz/x"))
	assert.Equal(t, "", ResolveURL("https://portal.cz", "  "))
}
