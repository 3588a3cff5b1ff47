package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/goleads/internal/domain"
)

func TestTechnologies(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []domain.Technology
	}{
		{
			name: "wordpress from generator meta",
			html: `<html><head><meta name="generator" content="WordPress 6.4.2"></head><body></body></html>`,
			want: []domain.Technology{{Name: "WordPress", Version: "6.4.2"}},
		},
		{
			name: "woocommerce implies wordpress markers",
			html: `<link rel="stylesheet" href="/wp-content/plugins/woocommerce/assets/css/woocommerce.css">`,
			want: []domain.Technology{
				{Name: "WooCommerce"},
				{Name: "WordPress"},
			},
		},
		{
			name: "shoptet cdn",
			html: `<script src="https://cdn.myshoptet.com/prj/123/main.js"></script>`,
			want: []domain.Technology{{Name: "Shoptet"}},
		},
		{
			name: "jquery with version from filename",
			html: `<script src="/js/jquery-3.6.0.min.js"></script>`,
			want: []domain.Technology{{Name: "jQuery", Version: "3.6.0"}},
		},
		{
			name: "analytics stack",
			html: `<script src="https://www.googletagmanager.com/gtm.js"></script>
			       <script>fbq('init','123');</script>`,
			want: []domain.Technology{
				{Name: "Google Tag Manager"},
				{Name: "Facebook Pixel"},
			},
		},
		{
			name: "plain site",
			html: `<html><body><h1>Hello</h1></body></html>`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Technologies(tt.html))
		})
	}
}

func TestHasEcommerce(t *testing.T) {
	shop := `<button class="add-to-cart">Do košíku</button>`
	assert.True(t, HasEcommerce(shop, nil))

	assert.True(t, HasEcommerce("", []domain.Technology{{Name: "Shoptet"}}))

	assert.False(t, HasEcommerce("<p>firemní web</p>", []domain.Technology{{Name: "WordPress"}}))
}
