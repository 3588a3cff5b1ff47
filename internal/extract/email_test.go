package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmails(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "plain address in text",
			html: `<p>Kontakt: info@firma.cz</p>`,
			want: []string{"info@firma.cz"},
		},
		{
			name: "mailto link wins ordering",
			html: `<a href="mailto:obchod@firma.cz?subject=Poptavka">napište nám</a> nebo info@firma.cz`,
			want: []string{"obchod@firma.cz", "info@firma.cz"},
		},
		{
			name: "at obfuscation with spaces",
			html: `info (at) firma.cz`,
			want: []string{"info@firma.cz"},
		},
		{
			name: "zavinac obfuscation",
			html: `jan.novak(zavináč)seznam.cz`,
			want: []string{"jan.novak@seznam.cz"},
		},
		{
			name: "dot obfuscation",
			html: `info(at)firma(dot)cz`,
			want: []string{"info@firma.cz"},
		},
		{
			name: "uppercase normalized and deduped",
			html: `INFO@FIRMA.CZ a info@firma.cz`,
			want: []string{"info@firma.cz"},
		},
		{
			name: "image srcset not an address",
			html: `<img srcset="logo@2x.png 2x">`,
			want: nil,
		},
		{
			name: "nothing found",
			html: `<p>Žádný kontakt</p>`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Emails(tt.html))
		})
	}
}
