// Package pdftext turns PDF bytes into plain text, one line per page.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrMalformedPDF is returned when the document structure cannot be read.
var ErrMalformedPDF = errors.New("malformed pdf")

// Extractor converts an uploaded document into text.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// PDFExtractor extracts text runs from every page of a PDF.
type PDFExtractor struct{}

// NewPDFExtractor returns a ready PDFExtractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract returns the text of all pages joined with newlines.
func (e *PDFExtractor) Extract(data []byte) (string, error) {
	pages, err := Pages(data)
	if err != nil {
		return "", err
	}
	return strings.Join(pages, "\n"), nil
}

// Pages returns the text of each page in document order. Fragments on a
// page are joined with a single space.
func Pages(data []byte) (pages []string, err error) {
	// The pdf package reports parse errors inside content streams by panicking.
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("%w: %v", ErrMalformedPDF, rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPDF, err)
	}

	numPages := reader.NumPage()
	pages = make([]string, 0, numPages)
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.Join(pageFragments(page), " "))
	}
	return pages, nil
}

// pageFragments collects one fragment per text-showing operator in content
// stream order.
func pageFragments(page pdf.Page) []string {
	var (
		fragments []string
		enc       pdf.TextEncoding
	)
	decode := func(raw string) string {
		if enc == nil {
			return raw
		}
		return enc.Decode(raw)
	}
	emit := func(s string) {
		if s != "" {
			fragments = append(fragments, s)
		}
	}

	interpret := func(strm pdf.Value) {
		pdf.Interpret(strm, func(stk *pdf.Stack, op string) {
			n := stk.Len()
			args := make([]pdf.Value, n)
			for i := n - 1; i >= 0; i-- {
				args[i] = stk.Pop()
			}
			switch op {
			case "Tf":
				if n == 2 && args[0].Kind() == pdf.Name {
					enc = page.Font(args[0].Name()).Encoder()
				}
			case "Tj", "'":
				if n >= 1 {
					emit(decode(args[n-1].RawString()))
				}
			case "\"":
				if n == 3 {
					emit(decode(args[2].RawString()))
				}
			case "TJ":
				if n != 1 || args[0].Kind() != pdf.Array {
					return
				}
				var sb strings.Builder
				arr := args[0]
				for i := 0; i < arr.Len(); i++ {
					if item := arr.Index(i); item.Kind() == pdf.String {
						sb.WriteString(decode(item.RawString()))
					}
				}
				emit(sb.String())
			}
		})
	}

	contents := page.V.Key("Contents")
	if contents.Kind() == pdf.Array {
		for i := 0; i < contents.Len(); i++ {
			interpret(contents.Index(i))
		}
	} else {
		interpret(contents)
	}
	return fragments
}
