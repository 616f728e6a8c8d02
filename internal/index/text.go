package index

import "strings"

// TextBuilder renders one logical path per line. Directory lines end with "/".
// Totals and the source directory are not rendered.
type TextBuilder struct {
	sb strings.Builder
}

// NewTextBuilder returns an empty TextBuilder.
func NewTextBuilder() *TextBuilder {
	return &TextBuilder{}
}

// Init is a no-op; the source directory is not rendered.
func (b *TextBuilder) Init(string) {}

// AddDirectory writes name followed by "/".
func (b *TextBuilder) AddDirectory(name, _ string, _, _ int) {
	b.sb.WriteString(name)
	b.sb.WriteString("/\n")
}

// AddFile writes name on its own line.
func (b *TextBuilder) AddFile(name, _ string, _ int64) {
	b.sb.WriteString(name)
	b.sb.WriteByte('\n')
}

// AddFinalSums is a no-op; totals are not rendered.
func (b *TextBuilder) AddFinalSums(int, int) {}

// Render returns the lines written so far.
func (b *TextBuilder) Render() ([]byte, error) {
	return []byte(b.sb.String()), nil
}
