package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/offsync"
	"github.com/fwojciec/offsync/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorMatcher(t *testing.T) {
	t.Parallel()

	t.Run("matches first element", func(t *testing.T) {
		t.Parallel()

		doc, err := gq.NewDocumentFromReader(strings.NewReader(`<div class="content">a</div><div class="content">b</div>`))
		require.NoError(t, err)

		m := goquery.MustSelectorMatcher(".content")
		sel, ok := m.Match(doc)

		require.True(t, ok)
		assert.Equal(t, "a", sel.Text())
		assert.Equal(t, ".content", m.Name())
	})

	t.Run("reports no match", func(t *testing.T) {
		t.Parallel()

		doc, err := gq.NewDocumentFromReader(strings.NewReader(`<p>nothing here</p>`))
		require.NoError(t, err)

		_, ok := goquery.MustSelectorMatcher("article").Match(doc)

		assert.False(t, ok)
	})

	t.Run("rejects invalid selector", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewSelectorMatcher("div[")

		require.Error(t, err)
		assert.Equal(t, offsync.EINVALID, offsync.ErrorCode(err))
	})
}

func TestDefaultMatchers(t *testing.T) {
	t.Parallel()

	matchers := goquery.DefaultMatchers()

	names := make([]string, len(matchers))
	for i, m := range matchers {
		names[i] = m.Name()
	}
	assert.Equal(t, goquery.DefaultSelectors, names)
	assert.Equal(t, "main", names[0])
}
