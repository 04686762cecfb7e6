package offsync

// Extractor turns a fetched page into a self-contained offline document.
type Extractor interface {
	// Extract returns a standalone HTML document built from rawHTML.
	// It never fails: malformed input degrades to a wrapped copy of the
	// raw markup. sourceURL is shown in the document's banner.
	Extract(rawHTML string, sourceURL string) string
}
