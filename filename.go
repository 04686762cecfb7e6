package offsync

import (
	"strings"
	"unicode/utf8"
)

// MaxFilenameLength is the maximum number of bytes kept from a URL before
// the ".html" extension is appended. Counting bytes keeps non-ASCII names
// under the 255-byte file name limit of common filesystems.
const MaxFilenameLength = 200

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	":", "_",
	"?", "_",
	"&", "_",
	"=", "_",
)

// DeriveFilename maps a URL to a stable local filename.
//
// The characters / : ? & = become underscores, a leading scheme ("https_"
// or "http_") is dropped, the result is cut to at most MaxFilenameLength
// bytes on a character boundary and ".html" is appended. Distinct URLs that differ only in the replaced
// characters map to the same name.
func DeriveFilename(url string) string {
	name := filenameReplacer.Replace(url)
	if rest, ok := strings.CutPrefix(name, "https_"); ok {
		name = rest
	} else if rest, ok := strings.CutPrefix(name, "http_"); ok {
		name = rest
	}

	if len(name) > MaxFilenameLength {
		cut := MaxFilenameLength
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}

	return name + ".html"
}
