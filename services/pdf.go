package services

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"

	"legaldoc/models"
)

// DocumentLoader extracts the pages of an uploaded document
type DocumentLoader interface {
	Load(data []byte) (models.Document, error)
}

// PDFLoader implements DocumentLoader for PDF uploads
type PDFLoader struct{}

// NewPDFLoader creates a new PDF loader
func NewPDFLoader() *PDFLoader {
	return &PDFLoader{}
}

// Load parses PDF bytes into per-page plain text
func (l *PDFLoader) Load(data []byte) (models.Document, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %v", models.ErrLoad, err)
	}

	var doc models.Document
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("Failed to extract text from page %d: %v", i, err)
			continue
		}
		doc.Pages = append(doc.Pages, models.Page{Text: text, Index: i - 1})
	}

	if len(doc.Pages) == 0 || strings.TrimSpace(doc.FullText()) == "" {
		return models.Document{}, fmt.Errorf("%w: no extractable text in document", models.ErrLoad)
	}

	return doc, nil
}
