package greyrockfetcher

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		fullPage bool
		want     *float64
	}{
		{name: "currency token", text: "Офис за $2,500 в месяц", want: floatPtr(2500)},
		{name: "currency with cents", text: "Rent is $1,850.50 monthly", want: floatPtr(1850.50)},
		{name: "rent label without dollar on detail page", text: "RENT: 3,200 Square Feet: 900", fullPage: true, want: floatPtr(3200)},
		{name: "rent label ignored on index card", text: "RENT: 3,200", fullPage: false, want: nil},
		{name: "no price", text: "Contact us for details", want: nil},
		{name: "empty", text: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPrice(tt.text, tt.fullPage)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestExtractArea(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *float64
	}{
		{name: "label form", text: "Square Feet: 2,500", want: floatPtr(2500)},
		{name: "inline sf", text: "Bright 1,200 SF office suite", want: floatPtr(1200)},
		{name: "inline sq ft", text: "about 850 sq. ft. total", want: floatPtr(850)},
		{name: "no area", text: "Spacious office downtown", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractArea(tt.text)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestExtractStatedRate(t *testing.T) {
	got := ExtractStatedRate("Offered at $12.50/SF/YR, available now")
	require.NotNil(t, got)
	assert.Equal(t, 12.50, *got)

	got = ExtractStatedRate("$18 per sq ft per year")
	require.NotNil(t, got)
	assert.Equal(t, 18.0, *got)

	assert.Nil(t, ExtractStatedRate("just $2,500 monthly"))
}

func TestExtractAddress(t *testing.T) {
	address, city := ExtractAddress("Offered at 25 Main Street, Stamford, CT 06901 near downtown")
	require.NotNil(t, address)
	require.NotNil(t, city)
	assert.Equal(t, "25 Main Street, Stamford, CT 06901", *address)
	assert.Equal(t, "Stamford", *city)

	// Город никогда не извлекается без полного адреса.
	address, city = ExtractAddress("located in Stamford near the station")
	assert.Nil(t, address)
	assert.Nil(t, city)
}

func TestExtractAvailability(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"This suite is Available Now!", domain.AvailabilityNow},
		{"available   now", domain.AvailabilityNow},
		{"Available: 06/01/2026", "06/01/2026"},
		{"Available June 15, 2026", "June 15, 2026"},
		{"Available June 2026", "June 2026"},
		{"Call our office for a tour", domain.AvailabilityContact},
		{"", domain.AvailabilityContact},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractAvailability(tt.text), "text: %q", tt.text)
	}
}

func TestExtractCategory(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Commercial Type: Office Square Feet: 900", "Office"},
		{"Lease Type: Retail", "Retail"},
		{"Prime warehouse with loading dock", "Warehouse"},
		{"Great space in a busy plaza", domain.CategoryDefault},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractCategory(tt.text), "text: %q", tt.text)
	}
}

func TestExtractLeaseType(t *testing.T) {
	got := ExtractLeaseType("Lease Type: Modified Gross")
	require.NotNil(t, got)
	assert.Equal(t, "Modified gross", *got)

	assert.Nil(t, ExtractLeaseType("office space for lease"))
}

func TestExtractTitleFallbackChain(t *testing.T) {
	addr := "25 Main Street, Stamford, CT 06901"

	t.Run("heading wins", func(t *testing.T) {
		doc := docFromHTML(t, `<div><h2>Corner Retail Suite</h2><a href="/listings/detail/abcd1234-0001">View Details</a></div>`)
		title := ExtractTitle(titleInput{scope: doc.Selection, address: &addr, id: "abcd1234-0001"})
		assert.Equal(t, "Corner Retail Suite", title)
	})

	t.Run("boilerplate heading skipped, anchor text wins", func(t *testing.T) {
		doc := docFromHTML(t, `<div><h3>View Details</h3><a href="/listings/detail/abcd1234-0001">Sunny Office Loft</a></div>`)
		title := ExtractTitle(titleInput{scope: doc.Selection, address: &addr, id: "abcd1234-0001"})
		assert.Equal(t, "Sunny Office Loft", title)
	})

	t.Run("page title on detail page with suffix stripped", func(t *testing.T) {
		doc := docFromHTML(t, `<html><head><title>Harbor Point Office | Greyrock Property Management</title></head><body></body></html>`)
		title := ExtractTitle(titleInput{scope: doc.Selection, fullPage: true, id: "abcd1234-0001"})
		assert.Equal(t, "Harbor Point Office", title)
	})

	t.Run("address fallback", func(t *testing.T) {
		doc := docFromHTML(t, `<div><h2>View</h2></div>`)
		title := ExtractTitle(titleInput{scope: doc.Selection, address: &addr, id: "abcd1234-0001"})
		assert.Equal(t, addr, title)
	})

	t.Run("synthesized title is never empty", func(t *testing.T) {
		doc := docFromHTML(t, `<div></div>`)
		title := ExtractTitle(titleInput{scope: doc.Selection, id: "abcd1234-0001-ffff"})
		assert.Equal(t, "Listing abcd1234", title)
	})
}

func TestExtractDescription(t *testing.T) {
	t.Run("known container wins over paragraphs", func(t *testing.T) {
		doc := docFromHTML(t, `<div>
			<div class="listing-description">Recently renovated suite with exposed brick and dedicated parking.</div>
			<p>Some much much longer unrelated paragraph that should not win because the container has priority.</p>
		</div>`)
		got := ExtractDescription(doc.Selection, normalizeWhitespace(doc.Selection.Text()))
		assert.Equal(t, "Recently renovated suite with exposed brick and dedicated parking.", got)
	})

	t.Run("longest paragraph fallback skips boilerplate", func(t *testing.T) {
		doc := docFromHTML(t, `<div>
			<p>Short.</p>
			<p>See our Privacy Policy for details about how we handle your personal data and cookies.</p>
			<p>Open floor plan with new HVAC, large windows and direct street access for customers.</p>
		</div>`)
		got := ExtractDescription(doc.Selection, normalizeWhitespace(doc.Selection.Text()))
		assert.Equal(t, "Open floor plan with new HVAC, large windows and direct street access for customers.", got)
	})

	t.Run("silent empty result", func(t *testing.T) {
		doc := docFromHTML(t, `<div><span>ok</span></div>`)
		got := ExtractDescription(doc.Selection, "ok")
		assert.Equal(t, "", got)
	})
}

func TestExtractImages(t *testing.T) {
	t.Run("gallery with lazy loading and dedup", func(t *testing.T) {
		doc := docFromHTML(t, `<div class="gallery">
			<img src="https://images.cdn.example.com/a.jpg">
			<img data-src="https://images.cdn.example.com/b.jpg">
			<img src="https://images.cdn.example.com/a.jpg">
			<img src="https://images.cdn.example.com/logo.png">
		</div>`)
		got := ExtractImages(doc.Selection)
		assert.Equal(t, []string{
			"https://images.cdn.example.com/a.jpg",
			"https://images.cdn.example.com/b.jpg",
		}, got)
	})

	t.Run("asset host fallback outside known containers", func(t *testing.T) {
		doc := docFromHTML(t, `<div>
			<img src="https://images.cdn.example.com/photo.jpg">
			<img src="https://other.example.com/banner.jpg">
		</div>`)
		got := ExtractImages(doc.Selection)
		assert.Equal(t, []string{"https://images.cdn.example.com/photo.jpg"}, got)
	})

	t.Run("placeholder excluded", func(t *testing.T) {
		doc := docFromHTML(t, `<div class="photos"><img src="https://images.cdn.example.com/placeholder.jpg"></div>`)
		assert.Empty(t, ExtractImages(doc.Selection))
	})
}

// Извлечение с мусорного входа молчит, но не паникует.
func TestExtractorsNeverPanicOnGarbage(t *testing.T) {
	garbage := []string{"", "   ", "<<<>>>", strings.Repeat("x", 10000), "$,,,", "Available:"}
	for _, text := range garbage {
		assert.NotPanics(t, func() {
			ExtractPrice(text, true)
			ExtractArea(text)
			ExtractStatedRate(text)
			ExtractAddress(text)
			ExtractAvailability(text)
			ExtractCategory(text)
			ExtractLeaseType(text)
		})
	}
}

func floatPtr(v float64) *float64 { return &v }
