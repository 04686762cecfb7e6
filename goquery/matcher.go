// Package goquery implements offsync.Extractor using CSS selectors
// evaluated by github.com/PuerkitoBio/goquery.
package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/offsync"
)

// Matcher locates the element that holds a page's main content.
type Matcher interface {
	// Match returns the content element of doc, if this matcher finds one.
	Match(doc *goquery.Document) (*goquery.Selection, bool)

	// Name returns the matcher's identifier (e.g. its selector).
	Name() string
}

// SelectorMatcher matches the first element selected by a CSS selector.
type SelectorMatcher struct {
	selector string
	matcher  cascadia.Selector
}

// NewSelectorMatcher compiles selector into a Matcher.
// Returns EINVALID if the selector does not parse.
func NewSelectorMatcher(selector string) (*SelectorMatcher, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, offsync.Errorf(offsync.EINVALID, "invalid selector %q: %v", selector, err)
	}
	return &SelectorMatcher{selector: selector, matcher: m}, nil
}

// MustSelectorMatcher is like NewSelectorMatcher but panics on an invalid selector.
func MustSelectorMatcher(selector string) *SelectorMatcher {
	m, err := NewSelectorMatcher(selector)
	if err != nil {
		panic(err)
	}
	return m
}

// Name returns the CSS selector.
func (m *SelectorMatcher) Name() string {
	return m.selector
}

// Match returns the first element in document order matching the selector.
func (m *SelectorMatcher) Match(doc *goquery.Document) (*goquery.Selection, bool) {
	sel := doc.FindMatcher(m.matcher).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return sel, true
}

// DefaultSelectors lists the content regions tried by DefaultMatchers,
// highest priority first. The last two are specific to MITRE ATT&CK pages.
var DefaultSelectors = []string{
	"main",
	".main-content",
	"#main-content",
	".content",
	"#content",
	"article",
	".technique-content",
	".tactic-content",
}

// DefaultMatchers returns a fresh matcher for each of DefaultSelectors.
func DefaultMatchers() []Matcher {
	matchers := make([]Matcher, 0, len(DefaultSelectors))
	for _, s := range DefaultSelectors {
		matchers = append(matchers, MustSelectorMatcher(s))
	}
	return matchers
}
