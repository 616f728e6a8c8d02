package index

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdownPunctuation is escaped with a backslash in user supplied names.
const markdownPunctuation = "\\`*_{}[]()#+-.!|<>~&"

// HTMLBuilder renders the index as a standalone HTML page. Records are laid
// out as a Markdown table which goldmark converts to HTML.
type HTMLBuilder struct {
	md        goldmark.Markdown
	sourceDir string
	rows      strings.Builder
	hasSums   bool
	dirs      int
	files     int
}

// NewHTMLBuilder returns an empty HTMLBuilder.
func NewHTMLBuilder() *HTMLBuilder {
	return &HTMLBuilder{
		md: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Init sets the page title and heading.
func (b *HTMLBuilder) Init(sourceDir string) {
	b.sourceDir = sourceDir
}

// AddDirectory adds a table row with the directory counts.
func (b *HTMLBuilder) AddDirectory(name, _ string, subdirCount, fileCount int) {
	fmt.Fprintf(&b.rows, "| %s | directory | %s, %s |\n",
		escapeMarkdown(name+"/"),
		english.Plural(subdirCount, "subdirectory", "subdirectories"),
		english.Plural(fileCount, "file", "files"))
}

// AddFile adds a table row with the file size.
func (b *HTMLBuilder) AddFile(name, _ string, size int64) {
	fmt.Fprintf(&b.rows, "| %s | file | %s |\n", escapeMarkdown(name), humanize.Bytes(uint64(size)))
}

// AddFinalSums sets the totals paragraph shown above the table.
func (b *HTMLBuilder) AddFinalSums(totalDirs, totalFiles int) {
	b.hasSums = true
	b.dirs = totalDirs
	b.files = totalFiles
}

// Render converts the Markdown table with goldmark and wraps it in a
// standalone UTF-8 page.
func (b *HTMLBuilder) Render() ([]byte, error) {
	var src strings.Builder
	fmt.Fprintf(&src, "# Index of %s\n\n", escapeMarkdown(b.sourceDir))
	if b.hasSums {
		fmt.Fprintf(&src, "%s, %s\n\n",
			english.Plural(b.dirs, "directory", "directories"),
			english.Plural(b.files, "file", "files"))
	}
	if b.rows.Len() > 0 {
		src.WriteString("| Name | Type | Details |\n")
		src.WriteString("| --- | --- | --- |\n")
		src.WriteString(b.rows.String())
	}

	var body bytes.Buffer
	if err := b.md.Convert([]byte(src.String()), &body); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n")
	page.WriteString("<!-- " + GeneratedNotice + " -->\n")
	page.WriteString("<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>Index of %s</title>\n", html.EscapeString(b.sourceDir))
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")

	return page.Bytes(), nil
}

func escapeMarkdown(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune(markdownPunctuation, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
