package export

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/cj3636/gblame/internal/gitx"
)

// Format represents the desired export format.
type Format string

const (
	// FormatHTML emits an HTML document for the blame listing.
	FormatHTML Format = "html"
	// FormatMarkdown emits a Markdown code block.
	FormatMarkdown Format = "markdown"
	// FormatANSI emits an ANSI-colored string.
	FormatANSI Format = "ansi"
)

// Listing is a rendered blame: one annotation line per source line.
type Listing struct {
	// FilePath is the file the blame describes.
	FilePath string
	// Rev is the revision the blame was pinned to, empty for the working
	// tree.
	Rev string
	// Lines are the raw blame output lines, each starting with a
	// revision id.
	Lines []string
}

// Options control how a listing is exported.
type Options struct {
	// Title will be shown in HTML/Markdown outputs when provided.
	Title string
	// ShowLineNumbers determines whether line numbers are included.
	ShowLineNumbers bool
}

// Render returns the listing in the requested format.
func Render(listing *Listing, format Format, opts Options) (string, error) {
	if listing == nil {
		return "", errors.New("blame listing is nil")
	}

	switch strings.ToLower(string(format)) {
	case string(FormatHTML):
		return renderHTML(listing, opts), nil
	case string(FormatMarkdown), "md":
		return renderMarkdown(listing, opts), nil
	case string(FormatANSI), "text":
		return renderANSI(listing, opts), nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
}

func (l *Listing) title(opts Options) string {
	if opts.Title != "" {
		return opts.Title
	}
	if l.Rev != "" {
		return fmt.Sprintf("Blame: %s @ %s", l.FilePath, gitx.ShortRev(l.Rev))
	}
	return fmt.Sprintf("Blame: %s", l.FilePath)
}

func renderHTML(listing *Listing, opts Options) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	b.WriteString("<style>body{background:#0f111a;color:#e5e7eb;font-family:Menlo,Consolas,monospace;}" +
		"pre{white-space:pre-wrap;word-wrap:break-word;}" +
		".rev{color:#e5c07b;}" +
		".line{color:#cbd5e1;}" +
		".lineno{color:#9ca3af;margin-right:12px;}" +
		"h1{font-size:18px;margin-bottom:12px;}" +
		"</style></head><body>")

	b.WriteString(fmt.Sprintf("<h1>%s</h1>\n<pre>", html.EscapeString(listing.title(opts))))

	for i, line := range listing.Lines {
		rev := gitx.RevisionID(line)
		rest := strings.TrimPrefix(line, rev)
		prefix := ""
		if opts.ShowLineNumbers {
			prefix = fmt.Sprintf("<span class=\"lineno\">%5d</span> ", i+1)
		}
		fmt.Fprintf(&b, "<div class=\"line\">%s<span class=\"rev\">%s</span>%s</div>\n",
			prefix, html.EscapeString(rev), html.EscapeString(rest))
	}

	b.WriteString("</pre></body></html>")
	return b.String()
}

func renderMarkdown(listing *Listing, opts Options) string {
	var b strings.Builder

	b.WriteString("# ")
	b.WriteString(listing.title(opts))
	b.WriteString("\n\n```\n")
	for i, line := range listing.Lines {
		if opts.ShowLineNumbers {
			fmt.Fprintf(&b, "%5d %s\n", i+1, line)
		} else {
			fmt.Fprintf(&b, "%s\n", line)
		}
	}
	b.WriteString("```\n")
	return b.String()
}

func renderANSI(listing *Listing, opts Options) string {
	const (
		revColor    = "\u001b[33m"
		linenoColor = "\u001b[90m"
		reset       = "\u001b[0m"
	)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", listing.title(opts))

	for i, line := range listing.Lines {
		rev := gitx.RevisionID(line)
		rest := strings.TrimPrefix(line, rev)
		if opts.ShowLineNumbers {
			fmt.Fprintf(&b, "%s%5d%s ", linenoColor, i+1, reset)
		}
		fmt.Fprintf(&b, "%s%s%s%s\n", revColor, rev, reset, rest)
	}
	return b.String()
}
