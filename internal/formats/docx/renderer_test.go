package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vynal-docs/vynal/internal/core/domain"
)

type testDocument struct {
	Body struct {
		Paragraphs []struct {
			Style struct {
				Val string `xml:"val,attr"`
			} `xml:"pPr>pStyle"`
			Runs []struct {
				Text []string `xml:"t"`
			} `xml:"r"`
		} `xml:"p"`
	} `xml:"body"`
}

type testCore struct {
	Title      string `xml:"title"`
	Identifier string `xml:"identifier"`
}

func render(t *testing.T, doc *domain.GeneratedDocument) *zip.Reader {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, New().Render(context.Background(), doc, &buf))
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	return zr
}

func readPart(t *testing.T, zr *zip.Reader, name string) []byte {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return data
	}
	t.Fatalf("part %s not found", name)
	return nil
}

func testDoc() *domain.GeneratedDocument {
	return &domain.GeneratedDocument{
		Reference:   "deadbeef",
		Title:       "Devis - Dupont & Fils",
		GeneratedAt: time.Date(2026, 2, 3, 4, 5, 0, 0, time.UTC),
		Body:        "# Devis\n## Détail\nMontant <total>: 1500.00",
	}
}

func TestRenderer_Metadata(t *testing.T) {
	r := New()

	assert.Equal(t, domain.FormatDOCX, r.Format())
	assert.Equal(t, "docx", r.Extension())
}

func TestRenderer_Render_Package(t *testing.T) {
	zr := render(t, testDoc())

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/_rels/document.xml.rels",
		"word/document.xml",
		"word/styles.xml",
		"docProps/core.xml",
	}, names)
}

func TestRenderer_Render_Content(t *testing.T) {
	zr := render(t, testDoc())

	var doc testDocument
	require.NoError(t, xml.Unmarshal(readPart(t, zr, "word/document.xml"), &doc))

	type para struct{ style, text string }
	var got []para
	for _, p := range doc.Body.Paragraphs {
		var text string
		for _, r := range p.Runs {
			for _, s := range r.Text {
				text += s
			}
		}
		got = append(got, para{p.Style.Val, text})
	}

	assert.Equal(t, []para{
		{"Heading1", "Devis - Dupont & Fils"},
		{"Meta", "Reference: deadbeef"},
		{"Meta", "Date: 2026-02-03 04:05"},
		{"", ""},
		{"Heading1", "Devis"},
		{"Heading2", "Détail"},
		{"", "Montant <total>: 1500.00"},
	}, got)

	var core testCore
	require.NoError(t, xml.Unmarshal(readPart(t, zr, "docProps/core.xml"), &core))
	assert.Equal(t, "Devis - Dupont & Fils", core.Title)
	assert.Equal(t, "deadbeef", core.Identifier)
}

func TestRenderer_Render_Reproducible(t *testing.T) {
	var a, b bytes.Buffer

	require.NoError(t, New().Render(context.Background(), testDoc(), &a))
	require.NoError(t, New().Render(context.Background(), testDoc(), &b))

	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestRenderer_Render_NilDocument(t *testing.T) {
	err := New().Render(context.Background(), nil, &bytes.Buffer{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
