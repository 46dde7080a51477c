package workspace

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// Markdown renders a report as a short human-readable summary.
func Markdown(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	fmt.Fprintf(&b, "- Words: %d\n- Units accepted: %d\n- Units rejected: %d\n- Modifications: %d\n\n", r.WordCount, r.Accepted, r.Rejected, r.Modifications)
	if len(r.Units) == 0 {
		return b.String()
	}
	b.WriteString("| Unit | Status | Modifications | Reasons |\n|---|---|---|---|\n")
	for _, u := range r.Units {
		status := "accepted"
		if !u.Accepted {
			status = "rejected"
		}
		fmt.Fprintf(&b, "| %d | %s | %d | %s |\n", u.Ordinal, status, u.Modifications, strings.Join(u.Reasons, ", "))
	}
	for _, u := range r.Units {
		if len(u.Warnings) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## Unit %d warnings\n\n", u.Ordinal)
		for _, w := range u.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}

func RenderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// SaveHTML renders the report and writes it to path.
func SaveHTML(path string, r Report) error {
	html, err := RenderHTML(Markdown(r))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write html report: %w", err)
	}
	return nil
}
