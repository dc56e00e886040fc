// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/Mg2n/AFI-Extractor/internal/textnorm"
)

// docxSource extracts paragraph text from the WordprocessingML body of a
// .docx container: top-level paragraphs first, then paragraphs inside
// table cells, matching how reviewers read the document.
type docxSource struct{}

func (docxSource) Lines(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening docx %s: %w", path, err)
	}
	defer zr.Close()

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return nil, fmt.Errorf("docx %s has no word/document.xml", path)
	}

	rc, err := doc.Open()
	if err != nil {
		return nil, fmt.Errorf("reading document.xml: %w", err)
	}
	defer rc.Close()

	paragraphs, tableParagraphs, err := bodyText(rc)
	if err != nil {
		return nil, fmt.Errorf("parsing document.xml of %s: %w", path, err)
	}

	var lines []string
	for _, raw := range append(paragraphs, tableParagraphs...) {
		for _, part := range strings.Split(raw, "\n") {
			if t := textnorm.Normalize(part); t != "" {
				lines = append(lines, t)
			}
		}
	}
	return lines, nil
}

// bodyText walks the WordprocessingML token stream and collects the text of
// every paragraph (w:p), accumulated from its text runs (w:t) with explicit
// breaks (w:br, w:cr) as newlines. Paragraphs nested in tables (w:tbl) are
// kept separate so they can trail the body.
func bodyText(r io.Reader) (paragraphs, tableParagraphs []string, err error) {
	dec := xml.NewDecoder(r)

	var (
		buf        []byte
		inPara     bool
		inText     bool
		tableDepth int
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "p":
				inPara = true
				buf = buf[:0]
			case "t":
				inText = inPara
			case "br", "cr":
				if inPara {
					buf = append(buf, '\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				if tableDepth > 0 {
					tableDepth--
				}
			case "p":
				if inPara {
					if tableDepth > 0 {
						tableParagraphs = append(tableParagraphs, string(buf))
					} else {
						paragraphs = append(paragraphs, string(buf))
					}
				}
				inPara = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				buf = append(buf, t...)
			}
		}
	}

	return paragraphs, tableParagraphs, nil
}
