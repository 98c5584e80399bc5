package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dslipak/pdf"
)

// Detected file format tags.
const (
	FormatPDF  = "PDF"
	FormatDOCX = "DOCX"
	FormatTXT  = "TXT"
)

// Result is the outcome of text extraction.
type Result struct {
	Text   string
	Format string
}

// Extract reads the file and returns its plain text together with the
// detected format tag. The format is derived from the extension; Validate
// is expected to have run first.
func Extract(path string) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := allowedExtensions[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %q", ext)
	}

	var text string
	var err error

	switch format {
	case FormatPDF:
		text, err = extractPDF(path)
	case FormatDOCX:
		text, err = extractDOCX(path)
	case FormatTXT:
		text, err = extractTXT(path)
	}
	if err != nil {
		return nil, fmt.Errorf("extract %s text: %w", format, err)
	}

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text content found in %s file", format)
	}

	return &Result{Text: text, Format: format}, nil
}

func extractTXT(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func extractPDF(path string) (string, error) {
	reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	data, err := io.ReadAll(plain)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// extractDOCX pulls the text nodes out of word/document.xml. A docx file is
// a zip archive with one XML document carrying all paragraph text.
func extractDOCX(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer archive.Close()

	var document *zip.File
	for _, file := range archive.File {
		if file.Name == "word/document.xml" {
			document = file
			break
		}
	}
	if document == nil {
		return "", fmt.Errorf("word/document.xml not found in archive")
	}

	reader, err := document.Open()
	if err != nil {
		return "", err
	}
	defer reader.Close()

	return docxText(reader)
}

func docxText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var builder strings.Builder
	inText := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				builder.Write(t)
			}
		}
	}

	return builder.String(), nil
}
