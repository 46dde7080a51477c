package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateProject(t *testing.T) {
	base := filepath.Join(t.TempDir(), BaseDirName)
	root, err := EnsureAt(base)
	if err != nil {
		t.Fatalf("ensure workspace: %v", err)
	}

	project, err := CreateProject(root, "The Long Drive", []byte("INT. CAR - NIGHT"))
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	for _, p := range []string{project.Root, project.SourcePath, project.ReportPath, filepath.Join(root, "reports")} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected path to exist %s: %v", p, err)
		}
	}

	settings, err := LoadSettings(root)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings.UnitWords != 2500 {
		t.Fatalf("unexpected default unit words %d", settings.UnitWords)
	}
}

func TestSaveHTML(t *testing.T) {
	project, err := CreateProject(t.TempDir(), "Pilot", nil)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	report := Report{
		Title:    "Pilot",
		Accepted: 1,
		Rejected: 1,
		Units: []UnitSummary{
			{Ordinal: 1, Accepted: true, Modifications: 4, Warnings: []string{`object "checks watch": 4 found, 1 replaced`}},
			{Ordinal: 2, Reasons: []string{"montages"}},
		},
	}
	if err := SaveHTML(project.HTMLPath, report); err != nil {
		t.Fatalf("save html: %v", err)
	}
	raw, err := os.ReadFile(project.HTMLPath)
	if err != nil {
		t.Fatalf("read html: %v", err)
	}
	html := string(raw)
	for _, want := range []string{"<h1>Pilot</h1>", "<li>Units rejected: 1</li>", "<h2>Unit 1 warnings</h2>", "<td>montages</td>"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in html:\n%s", want, html)
		}
	}
}
