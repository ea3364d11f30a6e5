package greyrockfetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateScopeKnownCardClass(t *testing.T) {
	doc := docFromHTML(t, `<div class="listing-item" id="card">
		<h3>Suite A</h3>
		<a href="/listings/detail/abcd1234-0001">View Details</a>
	</div>`)
	anchor := doc.Find("a").First()

	scope, found := LocateScope(anchor)
	require.True(t, found)
	id, _ := scope.Attr("id")
	assert.Equal(t, "card", id)
}

func TestLocateScopeClassFragment(t *testing.T) {
	doc := docFromHTML(t, `<div class="featured-listing-card" id="card">
		<a href="/listings/detail/abcd1234-0001">View Details</a>
	</div>`)
	anchor := doc.Find("a").First()

	scope, found := LocateScope(anchor)
	require.True(t, found)
	id, _ := scope.Attr("id")
	assert.Equal(t, "card", id)
}

func TestLocateScopeListItem(t *testing.T) {
	doc := docFromHTML(t, `<ul><li id="card">
		<a href="/listings/detail/abcd1234-0001">View Details</a>
	</li></ul>`)
	anchor := doc.Find("a").First()

	scope, found := LocateScope(anchor)
	require.True(t, found)
	id, _ := scope.Attr("id")
	assert.Equal(t, "card", id)
}

func TestLocateScopeHeuristicWalk(t *testing.T) {
	// Ни классов, ни списка: работает подъем до предка с достаточным
	// числом детей, ссылок и текста.
	doc := docFromHTML(t, `<div id="card">
		<h3>Corner Retail Suite on Main Street downtown</h3>
		<span>Rent $2,500 monthly, 1,200 SF, available immediately</span>
		<a href="/listings/detail/abcd1234-0001">View Details</a>
		<a href="/listings/detail/abcd1234-0001/apply">Apply</a>
	</div>`)
	anchor := doc.Find("a").First()

	scope, found := LocateScope(anchor)
	require.True(t, found)
	id, _ := scope.Attr("id")
	assert.Equal(t, "card", id)
}

func TestLocateScopeNeverReturnsAnchorItself(t *testing.T) {
	// Сам якорь с подходящим классом не принимается за карточку.
	doc := docFromHTML(t, `<div class="listing-row" id="card">
		<a class="listing-item" href="/listings/detail/abcd1234-0001">View Details</a>
	</div>`)
	anchor := doc.Find("a").First()

	scope, found := LocateScope(anchor)
	require.True(t, found)
	id, _ := scope.Attr("id")
	assert.Equal(t, "card", id)
}

func TestLocateScopeNotFound(t *testing.T) {
	doc := docFromHTML(t, `<a href="/listings/detail/abcd1234-0001">View Details</a>`)
	anchor := doc.Find("a").First()

	scope, found := LocateScope(anchor)
	assert.False(t, found)
	assert.Nil(t, scope)
}
