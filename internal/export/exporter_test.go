package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleListing() *Listing {
	return &Listing{
		FilePath: "pkg/x.go",
		Lines: []string{
			"a1b2c3d (Author 2024-01-01 1) package x",
			"f00dbeef (Author 2024-01-02 2) var y int",
		},
	}
}

func TestRenderMarkdown(t *testing.T) {
	out, err := Render(sampleListing(), FormatMarkdown, Options{})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(out, "# Blame: pkg/x.go"))
	require.Contains(t, out, "```\na1b2c3d (Author 2024-01-01 1) package x\n")
}

func TestRenderMarkdownWithLineNumbers(t *testing.T) {
	out, err := Render(sampleListing(), FormatMarkdown, Options{ShowLineNumbers: true})
	require.NoError(t, err)
	require.Contains(t, out, "    1 a1b2c3d")
	require.Contains(t, out, "    2 f00dbeef")
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	l := sampleListing()
	l.Lines = []string{"a1b2c3d (Author 1) x := a < b"}

	out, err := Render(l, FormatHTML, Options{})
	require.NoError(t, err)
	require.Contains(t, out, "a &lt; b")
	require.Contains(t, out, `<span class="rev">a1b2c3d</span>`)
}

func TestRenderANSIColorsRevision(t *testing.T) {
	out, err := Render(sampleListing(), FormatANSI, Options{})
	require.NoError(t, err)
	require.Contains(t, out, "\u001b[33ma1b2c3d\u001b[0m")
}

func TestRenderTitleWithPinnedRevision(t *testing.T) {
	l := sampleListing()
	l.Rev = "f00dbeefcafe1234"

	out, err := Render(l, FormatMarkdown, Options{})
	require.NoError(t, err)
	require.Contains(t, out, "# Blame: pkg/x.go @ f00dbee")
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, err := Render(sampleListing(), "pdf", Options{})
	require.Error(t, err)

	_, err = Render(nil, FormatMarkdown, Options{})
	require.Error(t, err)
}

func TestCopyToClipboardEncodesOSC52(t *testing.T) {
	var b strings.Builder
	require.NoError(t, CopyToClipboard("a1b2c3d", &b))
	require.Equal(t, "\u001b]52;c;YTFiMmMzZA==\u0007", b.String())
}
