package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestArticleStatusRules(t *testing.T) {
	assert.True(t, ArticleDraft.CanSubmit())
	assert.True(t, ArticleRejected.CanSubmit())
	assert.False(t, ArticlePending.CanSubmit())
	assert.False(t, ArticlePublished.CanSubmit())

	assert.True(t, ArticlePending.IsEditLocked())
	assert.True(t, ArticlePublished.IsEditLocked())
	assert.False(t, ArticleDraft.IsEditLocked())

	assert.Equal(t, ArticlePublished, ArticleStatusFor(RequestApproved))
	assert.Equal(t, ArticleRejected, ArticleStatusFor(RequestRejected))
}

func TestArticle_IsOwnedBy(t *testing.T) {
	author := &User{ID: uuid.New()}
	a := &Article{AuthorID: author.ID}

	assert.True(t, a.IsOwnedBy(author))
	assert.False(t, a.IsOwnedBy(&User{ID: uuid.New()}))
	assert.False(t, a.IsOwnedBy(nil))
}

func TestSnippet(t *testing.T) {
	short := "Hemoglobin 13.5 g/dL"
	assert.Equal(t, short, Snippet(short))

	long := make([]rune, ReportSnippetLength+20)
	for i := range long {
		long[i] = 'é'
	}
	got := []rune(Snippet(string(long)))
	assert.Len(t, got, ReportSnippetLength+3)
	assert.Equal(t, "...", string(got[ReportSnippetLength:]))
}

func TestRequestMeta_ClientDetails(t *testing.T) {
	var nilMeta *RequestMeta
	ip, ua := nilMeta.ClientDetails()
	assert.Nil(t, ip)
	assert.Nil(t, ua)

	ip, ua = (&RequestMeta{IPAddress: "127.0.0.1"}).ClientDetails()
	assert.Equal(t, "127.0.0.1", *ip)
	assert.Nil(t, ua)
}
