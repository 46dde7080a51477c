package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// UnitSummary is one unit's line in a project report.
type UnitSummary struct {
	Ordinal       int      `json:"ordinal"`
	Accepted      bool     `json:"accepted"`
	Reasons       []string `json:"reasons,omitempty"`
	Modifications int      `json:"modifications"`
	Warnings      []string `json:"warnings,omitempty"`
}

type Report struct {
	Title         string        `json:"title"`
	DocumentID    string        `json:"document_id,omitempty"`
	WordCount     int           `json:"word_count"`
	Accepted      int           `json:"accepted"`
	Rejected      int           `json:"rejected"`
	Modifications int           `json:"modifications"`
	Units         []UnitSummary `json:"units"`
	Analysis      any           `json:"analysis,omitempty"`
}

type ProjectInfo struct {
	ID         string
	Root       string
	SourcePath string
	ReportPath string
	HTMLPath   string
}

func CreateProject(workspaceRoot, title string, source []byte) (*ProjectInfo, error) {
	return CreateProjectWithSource(workspaceRoot, title, "source.fountain", source)
}

func CreateProjectWithSource(workspaceRoot, title, sourceFileName string, source []byte) (*ProjectInfo, error) {
	id := titleHash(title)
	projectRoot := filepath.Join(workspaceRoot, "projects", id)
	if err := os.MkdirAll(projectRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create project dir: %w", err)
	}

	sourceFileName = sanitizeSourceName(sourceFileName)
	sourcePath := filepath.Join(projectRoot, sourceFileName)
	if len(source) > 0 {
		if err := os.WriteFile(sourcePath, source, 0o644); err != nil {
			return nil, fmt.Errorf("write source file: %w", err)
		}
	} else if _, err := os.Stat(sourcePath); os.IsNotExist(err) {
		if err := os.WriteFile(sourcePath, nil, 0o644); err != nil {
			return nil, fmt.Errorf("create empty source file: %w", err)
		}
	}

	reportPath := filepath.Join(projectRoot, "report.json")
	if _, err := os.Stat(reportPath); os.IsNotExist(err) {
		if err := SaveReport(reportPath, Report{Title: strings.TrimSpace(title), Units: []UnitSummary{}}); err != nil {
			return nil, err
		}
	}

	return &ProjectInfo{
		ID:         id,
		Root:       projectRoot,
		SourcePath: sourcePath,
		ReportPath: reportPath,
		HTMLPath:   filepath.Join(projectRoot, "report.html"),
	}, nil
}

func SaveReport(path string, report Report) error {
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// SaveOutput writes the processed screenplay next to its source.
func (p *ProjectInfo) SaveOutput(text string) (string, error) {
	path := filepath.Join(p.Root, "output.fountain")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}
	return path, nil
}

func titleHash(title string) string {
	trimmed := strings.TrimSpace(strings.ToLower(title))
	sum := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(sum[:])[:12]
}

func sanitizeSourceName(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "source.fountain"
	}
	return strings.ReplaceAll(base, "..", "")
}
