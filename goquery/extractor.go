package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/offsync"
)

// DefaultTitle is the <title> of every generated document.
const DefaultTitle = "MITRE ATT&CK - Offline Content"

// Ensure Extractor implements offsync.Extractor at compile time.
var _ offsync.Extractor = (*Extractor)(nil)

// Extractor builds offline documents from raw HTML.
//
// Matchers are tried in order and the first one that finds an element wins;
// there is no scoring. The element's inner markup is placed in a standalone
// page shell as parsed, without sanitizing: the HTML parser normalizes it, so
// void elements are self-closed, entities are decoded and attribute values
// are double-quoted. When nothing matches, the whole raw input is placed
// in the shell instead, even if it is already a complete HTML document.
type Extractor struct {
	matchers []Matcher
	title    string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMatchers replaces the default matchers. Order is priority.
func WithMatchers(matchers ...Matcher) Option {
	return func(e *Extractor) {
		e.matchers = matchers
	}
}

// WithTitle sets the document title. Defaults to DefaultTitle.
func WithTitle(title string) Option {
	return func(e *Extractor) {
		e.title = title
	}
}

// NewExtractor creates an Extractor using DefaultMatchers.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		matchers: DefaultMatchers(),
		title:    DefaultTitle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the offline document for rawHTML fetched from sourceURL.
func (e *Extractor) Extract(rawHTML string, sourceURL string) string {
	content, ok := e.mainContent(rawHTML)
	if !ok {
		content = rawHTML
	}
	return renderShell(e.title, sourceURL, content)
}

// mainContent returns the inner markup of the first matching element.
func (e *Extractor) mainContent(rawHTML string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", false
	}

	for _, m := range e.matchers {
		sel, ok := m.Match(doc)
		if !ok {
			continue
		}
		inner, err := sel.Html()
		if err != nil {
			continue
		}
		return inner, true
	}

	return "", false
}
