package mock

import "github.com/fwojciec/offsync"

var _ offsync.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of offsync.Extractor.
type Extractor struct {
	ExtractFn func(rawHTML string, sourceURL string) string
}

func (e *Extractor) Extract(rawHTML string, sourceURL string) string {
	return e.ExtractFn(rawHTML, sourceURL)
}

var _ offsync.Converter = (*Converter)(nil)

// Converter is a mock implementation of offsync.Converter.
type Converter struct {
	ConvertFn func(html, sourceURL string) (string, error)
}

func (c *Converter) Convert(html, sourceURL string) (string, error) {
	return c.ConvertFn(html, sourceURL)
}
