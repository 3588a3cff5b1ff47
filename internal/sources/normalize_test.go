package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lowercases scheme and host",
			in:   "HTTPS://WWW.Epoptavka.CZ/poptavka/12345",
			want: "https://www.epoptavka.cz/poptavka/12345",
		},
		{
			name: "strips default port",
			in:   "https://example.cz:443/nabidka",
			want: "https://example.cz/nabidka",
		},
		{
			name: "keeps custom port",
			in:   "http://example.cz:8080/nabidka",
			want: "http://example.cz:8080/nabidka",
		},
		{
			name: "strips tracking parameters",
			in:   "https://example.cz/detail?utm_source=newsletter&id=7&fbclid=abc",
			want: "https://example.cz/detail?id=7",
		},
		{
			name: "sorts query keys",
			in:   "https://example.cz/hledat?q=web&kraj=praha",
			want: "https://example.cz/hledat?kraj=praha&q=web",
		},
		{
			name: "removes fragment and trailing slash",
			in:   "https://example.cz/o-nas/#kontakt",
			want: "https://example.cz/o-nas",
		},
		{
			name: "resolves dot segments",
			in:   "https://example.cz/a/../poptavka/./55",
			want: "https://example.cz/poptavka/55",
		},
		{
			name: "root path preserved",
			in:   "https://example.cz/",
			want: "https://example.cz/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects relative and empty input", func(t *testing.T) {
		_, err := NormalizeURL("")
		assert.Error(t, err)
		_, err = NormalizeURL("/poptavka/12345")
		assert.Error(t, err)
	})
}
