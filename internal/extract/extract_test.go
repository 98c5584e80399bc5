package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(txt, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	big := filepath.Join(dir, "big.pdf")
	if err := os.WriteFile(big, make([]byte, 2*1024*1024), 0o644); err != nil {
		t.Fatal(err)
	}

	exe := filepath.Join(dir, "resume.exe")
	if err := os.WriteFile(exe, []byte("MZ"), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name      string
		path      string
		maxSizeMB int
		valid     bool
		reason    string
	}{
		{"valid txt", txt, 5, true, ""},
		{"missing file", filepath.Join(dir, "nope.pdf"), 5, false, "file does not exist"},
		{"directory", dir + string(os.PathSeparator), 5, false, "path is a directory, not a file"},
		{"too large", big, 1, false, "file too large"},
		{"bad extension", exe, 5, false, "unsupported file type"},
		{"zero max falls back to default", txt, 0, true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			valid, reason := Validate(tc.path, tc.maxSizeMB)
			if valid != tc.valid {
				t.Fatalf("Validate(%q) = %v, want %v (reason: %s)", tc.path, valid, tc.valid, reason)
			}
			if tc.reason != "" && !strings.Contains(reason, tc.reason) {
				t.Fatalf("expected reason containing %q, got %q", tc.reason, reason)
			}
			if tc.valid && reason != "" {
				t.Fatalf("expected empty reason for valid file, got %q", reason)
			}
		})
	}
}

func TestExtractTXT(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(path, []byte("John Doe\nGo engineer"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Format != FormatTXT {
		t.Errorf("expected format TXT, got %s", result.Format)
	}
	if !strings.Contains(result.Text, "Go engineer") {
		t.Errorf("unexpected text: %q", result.Text)
	}
}

func TestExtractEmptyTXT(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(path, []byte("   \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Extract(path); err == nil {
		t.Fatal("expected error for file without text content")
	}
}

func TestExtractUnsupported(t *testing.T) {
	if _, err := Extract("resume.exe"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestExtractDOCX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.docx")
	writeDOCX(t, path, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t>Platform </w:t></w:r><w:r><w:t>Engineer</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	result, err := Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Format != FormatDOCX {
		t.Errorf("expected format DOCX, got %s", result.Format)
	}
	if !strings.Contains(result.Text, "Jane Doe") || !strings.Contains(result.Text, "Platform Engineer") {
		t.Errorf("unexpected text: %q", result.Text)
	}
}

func TestExtractDOCXWithoutDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.docx")

	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	writer := zip.NewWriter(file)
	entry, err := writer.Create("word/other.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := entry.Write([]byte("<x/>")); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	file.Close()

	if _, err := Extract(path); err == nil {
		t.Fatal("expected error for docx without document.xml")
	}
}

func writeDOCX(t *testing.T, path, documentXML string) {
	t.Helper()

	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	writer := zip.NewWriter(file)
	entry, err := writer.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := entry.Write([]byte(documentXML)); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
}
