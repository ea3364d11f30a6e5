package greyrockfetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
)

func TestBuildRecordDerivedRate(t *testing.T) {
	// $2,500 в месяц на 1,200 SF дает годовую ставку 25.00 за SF.
	doc := docFromHTML(t, `<div class="listing-item">
		<h3>Corner Retail Suite</h3>
		<p>Rent $2,500 monthly, 1,200 SF. Available Now.</p>
	</div>`)
	scope := doc.Find(".listing-item")

	record := buildRecord("abcd1234-0001", scope, false, testBaseURL)

	require.NotNil(t, record.Price)
	require.NotNil(t, record.Area)
	require.NotNil(t, record.PricePerAreaAnnualized)
	assert.Equal(t, 2500.0, *record.Price)
	assert.Equal(t, 1200.0, *record.Area)
	assert.Equal(t, 25.0, *record.PricePerAreaAnnualized)
}

func TestBuildRecordStatedRateWins(t *testing.T) {
	// Явно указанная ставка не перезаписывается производной.
	doc := docFromHTML(t, `<div class="listing-item">
		<p>Offered at $18.75/SF/YR. Rent $2,500 monthly, 1,200 SF.</p>
	</div>`)
	scope := doc.Find(".listing-item")

	record := buildRecord("abcd1234-0001", scope, false, testBaseURL)

	require.NotNil(t, record.PricePerAreaAnnualized)
	assert.Equal(t, 18.75, *record.PricePerAreaAnnualized)
}

func TestBuildRecordNoRateWithoutBothInputs(t *testing.T) {
	doc := docFromHTML(t, `<div class="listing-item"><p>Rent $2,500 monthly.</p></div>`)
	scope := doc.Find(".listing-item")

	record := buildRecord("abcd1234-0001", scope, false, testBaseURL)

	require.NotNil(t, record.Price)
	assert.Nil(t, record.Area)
	assert.Nil(t, record.PricePerAreaAnnualized)
}

func TestBuildRecordURLs(t *testing.T) {
	doc := docFromHTML(t, `<div class="listing-item"><p>Suite</p></div>`)
	scope := doc.Find(".listing-item")

	record := buildRecord("abcd1234-0001", scope, false, testBaseURL+"/")

	assert.Equal(t, testBaseURL+"/listings/detail/abcd1234-0001", record.DetailURL)
	assert.Equal(t, testBaseURL+"/listings/detail/abcd1234-0001/apply", record.ActionURL)
}

func TestBuildRecordDefaults(t *testing.T) {
	// Пустая карточка дает запись с синтетическим заголовком, категорией
	// по умолчанию и статусом pending, но никогда не nil-срез фотографий.
	doc := docFromHTML(t, `<div class="listing-item"></div>`)
	scope := doc.Find(".listing-item")

	record := buildRecord("abcd1234-0001", scope, false, testBaseURL)

	assert.Equal(t, "Listing abcd1234", record.Title)
	assert.Equal(t, domain.CategoryDefault, record.Category)
	assert.Equal(t, domain.AvailabilityContact, record.Availability)
	assert.Equal(t, domain.StatusPending, record.DerivedStatus)
	assert.NotNil(t, record.Images)
	assert.Empty(t, record.Images)
	assert.Nil(t, record.Coordinates)
}

func TestBuildRecordDescriptionTruncated(t *testing.T) {
	long := "This remarkable property offers an expansive open layout with abundant natural light, modern mechanical systems, renovated common areas, flexible build-out options, generous on-site parking, convenient highway access, and a professional management team committed to keeping every tenant comfortable throughout the year."
	doc := docFromHTML(t, `<div class="listing-item"><p>`+long+`</p></div>`)
	scope := doc.Find(".listing-item")

	record := buildRecord("abcd1234-0001", scope, false, testBaseURL)

	assert.LessOrEqual(t, len([]rune(record.Description)), 301)
	assert.True(t, len(record.Description) > 0)
}
