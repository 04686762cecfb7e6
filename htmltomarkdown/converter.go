// Package htmltomarkdown renders offline documents as Markdown.
package htmltomarkdown

import (
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/offsync"
)

// Ensure Converter implements offsync.Converter at compile time.
var _ offsync.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown, resolving relative links
// against the scheme and host of sourceURL. An empty or relative sourceURL
// leaves links as they are.
func (c *Converter) Convert(html, sourceURL string) (string, error) {
	u, err := url.Parse(sourceURL)
	if err != nil || u.Host == "" {
		return c.convert(html, "")
	}
	return c.convert(html, u.Scheme+"://"+u.Host)
}

func (c *Converter) convert(html, domain string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", offsync.Errorf(offsync.EINVALID, "empty HTML input")
	}

	var (
		result string
		err    error
	)
	if domain == "" {
		result, err = c.conv.ConvertString(html)
	} else {
		result, err = c.conv.ConvertString(html, converter.WithDomain(domain))
	}
	if err != nil {
		return "", err
	}

	return result, nil
}
