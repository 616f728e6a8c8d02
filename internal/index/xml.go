package index

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

type xmlDirectory struct {
	Name        string `xml:"name,attr"`
	BaseName    string `xml:"basename,attr"`
	SubdirCount int    `xml:"subdircount,attr"`
	FileCount   int    `xml:"filecount,attr"`
}

type xmlFile struct {
	Name     string `xml:"name,attr"`
	BaseName string `xml:"basename,attr"`
	FileSize int64  `xml:"filesize,attr"`
}

// xmlEntry is either a directory or a file, kept in emission order.
type xmlEntry struct {
	dir  *xmlDirectory
	file *xmlFile
}

// XMLBuilder renders an <index> document with <directory> and <file> children.
type XMLBuilder struct {
	sourceDir  string
	totalDirs  int
	totalFiles int
	entries    []xmlEntry
}

// NewXMLBuilder returns an empty XMLBuilder.
func NewXMLBuilder() *XMLBuilder {
	return &XMLBuilder{}
}

// Init records sourceDir as the sourcedirectory attribute of the root element.
func (b *XMLBuilder) Init(sourceDir string) {
	b.sourceDir = sourceDir
}

// AddDirectory appends a <directory> element.
func (b *XMLBuilder) AddDirectory(name, baseName string, subdirCount, fileCount int) {
	b.entries = append(b.entries, xmlEntry{dir: &xmlDirectory{
		Name:        name,
		BaseName:    baseName,
		SubdirCount: subdirCount,
		FileCount:   fileCount,
	}})
}

// AddFile appends a <file> element.
func (b *XMLBuilder) AddFile(name, baseName string, size int64) {
	b.entries = append(b.entries, xmlEntry{file: &xmlFile{
		Name:     name,
		BaseName: baseName,
		FileSize: size,
	}})
}

// AddFinalSums sets the totaldirs and totalfiles attributes of the root element.
func (b *XMLBuilder) AddFinalSums(totalDirs, totalFiles int) {
	b.totalDirs = totalDirs
	b.totalFiles = totalFiles
}

// Render encodes the document. Output is UTF-8 with an XML declaration.
func (b *XMLBuilder) Render() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString("<!-- " + GeneratedNotice + " -->\n")

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	root := xml.StartElement{
		Name: xml.Name{Local: "index"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "sourcedirectory"}, Value: b.sourceDir},
			{Name: xml.Name{Local: "totaldirs"}, Value: fmt.Sprint(b.totalDirs)},
			{Name: xml.Name{Local: "totalfiles"}, Value: fmt.Sprint(b.totalFiles)},
		},
	}
	if err := enc.EncodeToken(root); err != nil {
		return nil, fmt.Errorf("encode index element: %w", err)
	}

	for _, e := range b.entries {
		var err error
		if e.dir != nil {
			err = enc.EncodeElement(e.dir, xml.StartElement{Name: xml.Name{Local: "directory"}})
		} else {
			err = enc.EncodeElement(e.file, xml.StartElement{Name: xml.Name{Local: "file"}})
		}
		if err != nil {
			return nil, fmt.Errorf("encode entry: %w", err)
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, fmt.Errorf("encode index end: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("flush xml: %w", err)
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}
