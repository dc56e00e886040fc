package source

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"report.docx", true},
		{"report.PDF", true},
		{"Report.Docx", true},
		{"~$report.docx", false},
		{"notes.txt", false},
		{"report.doc", false},
	}
	for _, tt := range tests {
		if got := Supported(tt.name); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestForFile(t *testing.T) {
	if _, err := ForFile("a.docx"); err != nil {
		t.Errorf("ForFile(a.docx): %v", err)
	}
	if _, err := ForFile("a.pdf"); err != nil {
		t.Errorf("ForFile(a.pdf): %v", err)
	}
	if _, err := ForFile("a.xls"); err == nil {
		t.Error("ForFile(a.xls): want error")
	}
}

func TestIsTOCPage(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  bool
	}{
		{
			name:  "title match",
			lines: []string{"Annual Audit", "Table of Contents"},
			want:  true,
		},
		{
			name: "three dot leaders",
			lines: []string{
				"Introduction ......... 3",
				"Findings ............. 7",
				"Appendix ............ 12",
			},
			want: true,
		},
		{
			name: "two dot leaders are not enough",
			lines: []string{
				"Introduction ......... 3",
				"Findings ............. 7",
				"Regular text",
			},
			want: false,
		},
		{
			name:  "ordinary page",
			lines: []string{"Process 1.0 Intake", "Areas for Improvement:"},
			want:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTOCPage(tt.lines); got != tt.want {
				t.Errorf("isTOCPage = %v, want %v", got, tt.want)
			}
		})
	}
}

// writeDocx builds a minimal .docx container holding the given body XML.
func writeDocx(t *testing.T, path, bodyXML string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	doc, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	content := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + bodyXML + `</w:body></w:document>`
	if _, err := doc.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func para(text string) string {
	return `<w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

func TestDocxLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.docx")
	body := para("Process 1.0 Intake") +
		para("Areas for Improvement:") +
		`<w:tbl><w:tr><w:tc>` + para("cell line") + `</w:tc></w:tr></w:tbl>` +
		para("1 - Bad process (Major - Ops)") +
		para("   ")
	writeDocx(t, path, body)

	lines, err := docxSource{}.Lines(path)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"Process 1.0 Intake",
		"Areas for Improvement:",
		"1 - Bad process (Major - Ops)",
		"cell line",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %v, want %d", len(lines), lines, len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestDocxSplitRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.docx")
	body := `<w:p><w:r><w:t>Bad </w:t></w:r><w:r><w:t>process</w:t></w:r></w:p>`
	writeDocx(t, path, body)

	lines, err := docxSource{}.Lines(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0] != "Bad process" {
		t.Errorf("lines = %v, want [Bad process]", lines)
	}
}

func TestDocxExplicitBreaksSplitLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breaks.docx")
	body := `<w:p><w:r><w:t>first line</w:t><w:br/><w:t>second line</w:t></w:r></w:p>`
	writeDocx(t, path, body)

	lines, err := docxSource{}.Lines(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 || lines[0] != "first line" || lines[1] != "second line" {
		t.Errorf("lines = %v, want [first line, second line]", lines)
	}
}

func TestDocxMissingDocumentXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	zw.Close()
	f.Close()

	if _, err := (docxSource{}).Lines(path); err == nil {
		t.Error("want error for docx without word/document.xml")
	}
}
