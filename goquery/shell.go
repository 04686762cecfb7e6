package goquery

import "strings"

// shellStyle is the fixed stylesheet of generated documents.
const shellStyle = `        body { font-family: Arial, sans-serif; margin: 20px; line-height: 1.6; margin-top: 6px }
        h1, h2, h3 { color: #333; }
        .original-url { color: #666; font-size: 0.9em; margin-bottom: 6px; }
`

// renderShell wraps content in a standalone HTML page with a banner linking
// to sourceURL. content is written as is.
func renderShell(title, sourceURL, content string) string {
	var b strings.Builder
	b.Grow(len(content) + 1024)

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("    <meta charset=\"UTF-8\">\n")
	b.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("    <title>")
	b.WriteString(title)
	b.WriteString("</title>\n    <style>\n")
	b.WriteString(shellStyle)
	b.WriteString("    </style>\n</head>\n<body>\n")
	b.WriteString("    <div class=\"original-url\">\n")
	b.WriteString("        <strong>Original URL:</strong> <a href=\"")
	// A quote would end the attribute; %22 is the same URL.
	b.WriteString(strings.ReplaceAll(sourceURL, `"`, "%22"))
	b.WriteString("\" target=\"_blank\">")
	b.WriteString(sourceURL)
	b.WriteString("</a>\n    </div>\n    ")
	b.WriteString(content)
	b.WriteString("\n</body>\n</html>")

	return b.String()
}
