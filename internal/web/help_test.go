package web

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListHelpTopicsOrdered(t *testing.T) {
	topics, err := listHelpTopics("widgets")
	require.NoError(t, err)

	var slugs []string
	for _, tp := range topics {
		slugs = append(slugs, tp.Slug)
		assert.Equal(t, tp.Slug == "widgets", tp.Active)
	}
	assert.Equal(t, []string{"getting-started", "customization", "widgets", "endpoints"}, slugs)
	assert.Equal(t, "Getting Started", topics[0].Title)
}

func TestRenderHelpTopicUnknownSlug(t *testing.T) {
	topics, err := listHelpTopics("")
	require.NoError(t, err)

	html, err := renderHelpTopic("../server", topics)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1>Not Found</h1>")
}

func TestHelpPage(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/help", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Getting Started</h1>")
	assert.Contains(t, rec.Body.String(), `class="active">Getting Started</a>`)

	rec = ts.do(http.MethodGet, "/help?topic=customization", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Customization</h1>")
}
