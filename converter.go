package offsync

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an offline document into Markdown for plain-text
	// reading. Relative links are resolved against sourceURL when it is
	// an absolute URL. Returns EINVALID for empty input.
	Convert(html, sourceURL string) (string, error)
}
