// Package ingest reads a screenplay from disk as plain text with one blank
// line between blocks, which is what the line classifier expects.
package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Parsed is a screenplay as read from disk.
type Parsed struct {
	Title       string
	SourcePath  string
	SourceBytes []byte
	Text        string
}

type extractor func(path string, raw []byte) (string, error)

var extractors = map[string]extractor{
	".txt":      plainText,
	".fountain": plainText,
	".docx":     docxText,
	".pdf":      pdfText,
}

func ParseFile(path string) (*Parsed, error) {
	ext := strings.ToLower(filepath.Ext(path))
	extract, ok := extractors[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	text, err := extract(path, raw)
	if err != nil {
		return nil, err
	}
	return &Parsed{
		Title:       strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		SourcePath:  path,
		SourceBytes: raw,
		Text:        normalizeWhitespace(text),
	}, nil
}

func plainText(_ string, raw []byte) (string, error) {
	return string(raw), nil
}

// docxText turns every w:p into one line. Soft breaks (w:br, w:cr) start a
// new line inside a paragraph; tabs become spaces.
func docxText(_ string, raw []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open docx zip: %w", err)
	}
	rc, err := zr.Open("word/document.xml")
	if err != nil {
		return "", fmt.Errorf("word/document.xml not found: %w", err)
	}
	defer rc.Close()

	var lines []string
	var cur strings.Builder
	inText, inParagraph := false, false
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				cur.Reset()
			case "t":
				inText = true
			case "tab":
				cur.WriteByte(' ')
			case "br", "cr":
				lines = append(lines, cur.String())
				cur.Reset()
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				lines = append(lines, cur.String())
				inParagraph = false
			}
		case xml.CharData:
			if inText && inParagraph {
				cur.Write(t)
			}
		}
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("no paragraphs in document.xml")
	}
	return strings.Join(lines, "\n"), nil
}

// pdfText rebuilds screenplay lines from text rows. A vertical gap larger
// than a line and a half marks a blank line between blocks.
func pdfText(path string, _ []byte) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			// some pages have no row layout; fall back to the flat text
			content, plainErr := page.GetPlainText(nil)
			if plainErr == nil {
				b.WriteString(content)
				b.WriteString("\n\n")
			}
			continue
		}
		var prev int64
		for j, row := range rows {
			var line strings.Builder
			size := 0.0
			for _, word := range row.Content {
				line.WriteString(word.S)
				size = max(size, word.FontSize)
			}
			if j > 0 && size > 0 && float64(prev-row.Position) > 1.5*size {
				b.WriteString("\n")
			}
			b.WriteString(line.String())
			b.WriteString("\n")
			prev = row.Position
		}
		b.WriteString("\n")
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("no extractable text found in pdf")
	}
	return b.String(), nil
}

// normalizeWhitespace trims every line and collapses runs of spaces. Blank
// lines survive, one at a time: they end dialogue blocks.
func normalizeWhitespace(text string) string {
	text = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(text)
	var out []string
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" && (len(out) == 0 || out[len(out)-1] == "") {
			continue
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n")) + "\n"
}
