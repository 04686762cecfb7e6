package offsync_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/offsync"
	"github.com/stretchr/testify/assert"
)

func TestDeriveFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "strips https scheme",
			url:  "https://attack.mitre.org/techniques/T1059/",
			want: "__attack.mitre.org_techniques_T1059_.html",
		},
		{
			name: "strips http scheme",
			url:  "http://example.com/a",
			want: "__example.com_a.html",
		},
		{
			name: "replaces query characters",
			url:  "https://example.com/page?id=1&lang=en",
			want: "__example.com_page_id_1_lang_en.html",
		},
		{
			name: "keeps scheme-like text that is not leading",
			url:  "ftp://host/https_x",
			want: "ftp___host_https_x.html",
		},
		{
			name: "empty url",
			url:  "",
			want: ".html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, offsync.DeriveFilename(tt.url))
		})
	}
}

func TestDeriveFilename_ContainsNoUnsafeCharacters(t *testing.T) {
	t.Parallel()

	name := offsync.DeriveFilename("https://example.com/a/b:c?d=e&f=g")

	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, ":")
	assert.NotContains(t, name, "?")
	assert.NotContains(t, name, "&")
	assert.NotContains(t, name, "=")
	assert.True(t, strings.HasSuffix(name, ".html"))
}

func TestDeriveFilename_Truncates(t *testing.T) {
	t.Parallel()

	t.Run("limits length before the extension", func(t *testing.T) {
		t.Parallel()

		name := offsync.DeriveFilename("https://example.com/" + strings.Repeat("a", 500))

		assert.Equal(t, offsync.MaxFilenameLength+len(".html"), len(name))
		assert.True(t, strings.HasSuffix(name, ".html"))
	})

	t.Run("counts bytes for multi-byte characters", func(t *testing.T) {
		t.Parallel()

		name := offsync.DeriveFilename("https://example.com/" + strings.Repeat("é", 300))

		assert.True(t, utf8.ValidString(name))
		assert.Equal(t, offsync.MaxFilenameLength, len(strings.TrimSuffix(name, ".html")))
	})

	t.Run("keeps long CJK paths within the byte limit", func(t *testing.T) {
		t.Parallel()

		name := offsync.DeriveFilename("https://ja.example.org/wiki/" + strings.Repeat("日", 150))
		base := strings.TrimSuffix(name, ".html")

		assert.True(t, utf8.ValidString(name))
		assert.LessOrEqual(t, len(base), offsync.MaxFilenameLength)
		assert.Greater(t, len(base), offsync.MaxFilenameLength-utf8.UTFMax)
		assert.True(t, strings.HasPrefix(base, "ja.example.org_wiki_日"))
	})

	t.Run("does not split a character at the limit", func(t *testing.T) {
		t.Parallel()

		// 199 ASCII bytes followed by a three-byte character
		name := offsync.DeriveFilename(strings.Repeat("a", offsync.MaxFilenameLength-1) + "日日")

		assert.Equal(t, strings.Repeat("a", offsync.MaxFilenameLength-1)+".html", name)
	})
}

func TestDeriveFilename_IsStable(t *testing.T) {
	t.Parallel()

	url := "https://attack.mitre.org/tactics/TA0001/"

	assert.Equal(t, offsync.DeriveFilename(url), offsync.DeriveFilename(url))
}
