// Package docx writes generated documents as WordprocessingML (.docx) files.
package docx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"io"
	"strings"
	"time"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driven"
	"github.com/vynal-docs/vynal/internal/formats/layout"
)

// Ensure Renderer implements the interface.
var _ driven.FormatRenderer = (*Renderer)(nil)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="` + wordNS + `">
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:rPr><w:sz w:val="22"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:pPr><w:spacing w:before="240" w:after="120"/></w:pPr><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/><w:pPr><w:spacing w:before="200" w:after="80"/></w:pPr><w:rPr><w:b/><w:sz w:val="26"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Meta"><w:name w:val="Meta"/><w:basedOn w:val="Normal"/><w:rPr><w:i/><w:sz w:val="18"/></w:rPr></w:style>
</w:styles>`

var styleIDs = map[layout.Style]string{
	layout.Heading1: "Heading1",
	layout.Heading2: "Heading2",
	layout.Meta:     "Meta",
}

// Renderer writes a minimal package: document, styles and core properties.
type Renderer struct{}

// New creates a new DOCX renderer.
func New() *Renderer {
	return &Renderer{}
}

// Format returns domain.FormatDOCX.
func (r *Renderer) Format() domain.OutputFormat {
	return domain.FormatDOCX
}

// Extension returns "docx".
func (r *Renderer) Extension() string {
	return "docx"
}

// Render writes doc as a .docx package.
// Entry timestamps are the generation time, so output is reproducible.
func (r *Renderer) Render(ctx context.Context, doc *domain.GeneratedDocument, w io.Writer) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/document.xml", documentXML(layout.Document(doc))},
		{"word/styles.xml", stylesXML},
		{"docProps/core.xml", coreXML(doc)},
	}

	modified := doc.GeneratedAt
	if modified.IsZero() {
		modified = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	for _, part := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     part.name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return err
		}
		if _, err := io.WriteString(fw, part.content); err != nil {
			return err
		}
	}

	return zw.Close()
}

// documentXML builds word/document.xml with one paragraph per line.
func documentXML(lines []layout.Line) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document xmlns:w="` + wordNS + `"><w:body>`)
	for _, line := range lines {
		b.WriteString("<w:p>")
		if id, ok := styleIDs[line.Style]; ok {
			b.WriteString(`<w:pPr><w:pStyle w:val="` + id + `"/></w:pPr>`)
		}
		if line.Text != "" {
			b.WriteString(`<w:r><w:t xml:space="preserve">`)
			escape(&b, line.Text)
			b.WriteString("</w:t></w:r>")
		}
		b.WriteString("</w:p>")
	}
	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="1134" w:right="1134" w:bottom="1134" w:left="1134"/></w:sectPr>`)
	b.WriteString("</w:body></w:document>")
	return b.String()
}

// coreXML builds docProps/core.xml carrying the title and reference.
func coreXML(doc *domain.GeneratedDocument) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/"` +
		` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	b.WriteString("<dc:title>")
	escape(&b, doc.Title)
	b.WriteString("</dc:title><dc:identifier>")
	escape(&b, doc.Reference)
	b.WriteString("</dc:identifier><dc:creator>vynal</dc:creator>")
	if !doc.GeneratedAt.IsZero() {
		b.WriteString(`<dcterms:created xsi:type="dcterms:W3CDTF">` +
			doc.GeneratedAt.UTC().Format(time.RFC3339) + "</dcterms:created>")
	}
	b.WriteString("</cp:coreProperties>")
	return b.String()
}

func escape(b *strings.Builder, s string) {
	// strings.Builder writes never fail.
	_ = xml.EscapeText(b, []byte(s))
}
