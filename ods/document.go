package ods

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
)

const contentPart = "content.xml"

type part struct {
	name string
	data []byte
}

// Document is a loaded .ods package. Only content.xml is parsed into a
// mutable tree; every other part (styles, settings, manifest, mimetype) is
// carried through verbatim on save.
type Document struct {
	parts   []part
	Content *Element
}

// Load reads an OpenDocument spreadsheet from disk.
func Load(path string) (*Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer zr.Close()

	doc := &Document{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading part %s: %w", f.Name, err)
		}
		doc.parts = append(doc.parts, part{name: f.Name, data: data})
	}

	var content []byte
	for _, p := range doc.parts {
		if p.name == contentPart {
			content = p.data
			break
		}
	}
	if content == nil {
		return nil, fmt.Errorf("%s: missing required part %s", path, contentPart)
	}

	doc.Content, err = ParseXML(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Save writes the package to path, re-serializing content.xml from the
// current tree. The mimetype part is written first and uncompressed, as the
// ODF packaging rules require.
func (d *Document) Save(path string) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()

	zw := zip.NewWriter(out)
	for _, p := range d.parts {
		data := p.data
		if p.name == contentPart {
			data = SerializeXML(d.Content)
		}
		hdr := &zip.FileHeader{Name: p.name, Method: zip.Deflate}
		if p.name == "mimetype" {
			hdr.Method = zip.Store
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("writing part %s: %w", p.name, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing part %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing %s: %w", path, err)
	}
	return nil
}

// Spreadsheet returns the office:spreadsheet element of the document body,
// or nil if the document is not a spreadsheet.
func (d *Document) Spreadsheet() *Element {
	body := d.Content.FirstChild("office:body")
	if body == nil {
		return nil
	}
	return body.FirstChild("office:spreadsheet")
}

// Tables returns the sheets of the spreadsheet in document order.
func (d *Document) Tables() []*Element {
	ss := d.Spreadsheet()
	if ss == nil {
		return nil
	}
	return ss.ChildElements("table:table")
}
