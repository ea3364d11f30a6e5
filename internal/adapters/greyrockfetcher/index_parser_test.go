package greyrockfetcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FloodCustomApp/greyrock-listings/internal/contextkeys"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/domain"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/port"
)

const testBaseURL = "https://greyrockpm.example.com"

func testLogger() port.LoggerPort {
	return contextkeys.LoggerFromContext(context.Background())
}

const indexPageHTML = `<html><body>
	<div class="listing-item">
		<h3>Corner Retail Suite</h3>
		<p>Prime retail at 25 Main Street, Stamford, CT 06901. Rent $2,500, 1,200 SF. Available Now.</p>
		<a href="/listings/detail/abcd1234-0001">View Details</a>
		<a href="/listings/detail/abcd1234-0001">More</a>
	</div>
	<div class="listing-item">
		<h3>Warehouse Bay</h3>
		<p>Square Feet: 4,000 at 10 Dock Road, Norwalk, CT 06850.</p>
		<a href="/listings/detail/ffff0000-0002">View Details</a>
	</div>
</body></html>`

func TestParseIndexListings(t *testing.T) {
	doc := docFromHTML(t, indexPageHTML)

	result := ParseIndex(doc, testBaseURL, testLogger())

	require.Equal(t, domain.IndexOutcomeListings, result.Outcome)

	// Два якоря на первый объект дают ровно одну запись; порядок
	// первого появления сохранен.
	require.Len(t, result.Refs, 2)
	assert.Equal(t, "abcd1234-0001", result.Refs[0].ID)
	assert.Equal(t, "ffff0000-0002", result.Refs[1].ID)
	assert.Equal(t, testBaseURL+"/listings/detail/abcd1234-0001", result.Refs[0].DetailURL)

	require.Len(t, result.Records, 2)
	first := result.Records[0]
	assert.Equal(t, "Corner Retail Suite", first.Title)
	require.NotNil(t, first.Price)
	assert.Equal(t, 2500.0, *first.Price)
	require.NotNil(t, first.City)
	assert.Equal(t, "Stamford", *first.City)
	assert.Equal(t, domain.AvailabilityNow, first.Availability)
	assert.Equal(t, domain.StatusAvailable, first.DerivedStatus)
}

func TestParseIndexIdempotent(t *testing.T) {
	doc := docFromHTML(t, indexPageHTML)

	a := ParseIndex(doc, testBaseURL, testLogger())
	b := ParseIndex(doc, testBaseURL, testLogger())

	assert.Equal(t, a, b)
}

func TestParseIndexAnchorWithoutCardIsSkipped(t *testing.T) {
	// Якорь без локализуемой карточки попадает в Refs, но не в Records.
	doc := docFromHTML(t, `<html><body>
		<a href="/listings/detail/abcd1234-0001">View Details</a>
	</body></html>`)

	result := ParseIndex(doc, testBaseURL, testLogger())

	require.Equal(t, domain.IndexOutcomeListings, result.Outcome)
	assert.Len(t, result.Refs, 1)
	assert.Empty(t, result.Records)
}

func TestParseIndexNoInventory(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<h1>Current Listings</h1>
		<p>There are currently no listings. Please check back soon.</p>
	</body></html>`)

	result := ParseIndex(doc, testBaseURL, testLogger())

	assert.Equal(t, domain.IndexOutcomeNoInventory, result.Outcome)
	assert.Empty(t, result.Refs)
}

func TestParseIndexStructureChanged(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<h1>Welcome</h1>
		<p>Our site got a fresh new look.</p>
	</body></html>`)

	result := ParseIndex(doc, testBaseURL, testLogger())

	assert.Equal(t, domain.IndexOutcomeStructureChanged, result.Outcome)
}

func TestParseIndexIgnoresMalformedDetailLinks(t *testing.T) {
	// Слишком короткий сегмент идентификатора не проходит шаблон.
	doc := docFromHTML(t, `<html><body>
		<div class="listing-item"><a href="/listings/detail/xyz">Bad</a></div>
	</body></html>`)

	result := ParseIndex(doc, testBaseURL, testLogger())

	assert.Equal(t, domain.IndexOutcomeStructureChanged, result.Outcome)
}
