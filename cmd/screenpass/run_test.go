package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenpass/internal/config"
	"screenpass/internal/db"
	"screenpass/internal/pipeline"
	"screenpass/internal/story"
	"screenpass/internal/workspace"
)

const draft = `INT. FARMHOUSE KITCHEN - NIGHT

Sarah scrapes burnt rice into the bin. She checks her watch. She checks her watch again.

MARCUS
You left the gate open again.

SARAH
The latch is broken. I told you Tuesday.

Marcus pulls a screwdriver from the drawer and heads for the porch.

INT. LAB - DAY

DR. VOSS
The parameters have changed.

DR. VOSS
Affirmative. Statistically, nobody survives.
`

func setup(t *testing.T) (*config.Config, *db.Store, string, *screenplayFile) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		DatabasePath: filepath.Join(dir, "screenpass.db"),
		LogLevel:     "info",
		Seed:         1,
		UnitWords:    20,
		Pipeline:     pipeline.DefaultConfig(),
	}
	require.NoError(t, cfg.Validate())

	store, err := db.Open(context.Background(), cfg.DatabasePath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	root, err := workspace.EnsureAt(filepath.Join(dir, "ws"))
	require.NoError(t, err)

	path := filepath.Join(dir, "draft.fountain")
	require.NoError(t, os.WriteFile(path, []byte(draft), 0o644))
	sf, err := loadScreenplay(path, cfg, nil)
	require.NoError(t, err)
	require.Len(t, sf.job.Units, 2)
	return cfg, store, root, sf
}

func TestProcessScreenplayStopsAtReject(t *testing.T) {
	cfg, store, root, sf := setup(t)
	ctx := context.Background()
	var out bytes.Buffer

	report, err := processScreenplay(ctx, cfg, store, root, sf, false, &out)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Accepted)
	assert.Equal(t, 1, report.Rejected)
	require.Len(t, report.Units, 2)
	assert.True(t, report.Units[0].Accepted)
	assert.Contains(t, report.Units[1].Reasons, "clinical_dialogue")
	assert.Contains(t, out.String(), "draft: unit 2 rejected")
	assert.Contains(t, out.String(), "CLINICAL DIALOGUE")

	attempts, err := store.CountRows(ctx, "unit_attempts")
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)

	_, next, err := store.LoadContext(ctx, report.DocumentID)
	require.NoError(t, err)
	assert.Equal(t, 2, next, "the rejected unit must not advance the stored context")

	project, err := workspace.CreateProject(root, "draft", nil)
	require.NoError(t, err)
	output, err := os.ReadFile(filepath.Join(project.Root, "output.fountain"))
	require.NoError(t, err)
	assert.Contains(t, string(output), "INT. FARMHOUSE KITCHEN - NIGHT")
	assert.NotContains(t, string(output), "DR. VOSS")
	assert.FileExists(t, project.HTMLPath)
}

func TestAnalyzeScreenplayWritesNothing(t *testing.T) {
	cfg, store, _, sf := setup(t)

	decisions := analyzeScreenplay(cfg, sf)
	require.Len(t, decisions, 2)
	assert.False(t, decisions[0].MustRegenerate)
	assert.True(t, decisions[1].MustRegenerate)

	docs, err := store.CountRows(context.Background(), "documents")
	require.NoError(t, err)
	assert.Zero(t, docs)
}

func TestLoadCharacters(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "characters.json")
	raw := `[
		{"name": "Hale", "role": "lead", "archetype": "Professor", "voice_traits": ["long-winded", "precise"]},
		{"name": "Rosa", "archetype": "wizard"},
		{"name": "Marcus"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	profiles, err := loadCharacters(path)
	require.NoError(t, err)
	require.Len(t, profiles, 3)
	assert.Equal(t, story.ArchetypeProfessor, profiles[0].Archetype)
	assert.Equal(t, []string{"long-winded", "precise"}, profiles[0].VoiceTraits)
	assert.Equal(t, story.ArchetypeEveryman, profiles[1].Archetype)
	assert.Equal(t, story.ArchetypeEveryman, profiles[2].Archetype)

	none, err := loadCharacters("")
	require.NoError(t, err)
	assert.Nil(t, none)

	require.NoError(t, os.WriteFile(path, []byte(`[{"role": "extra"}]`), 0o644))
	_, err = loadCharacters(path)
	assert.Error(t, err)
}

func TestCharactersReachTheGate(t *testing.T) {
	dir := t.TempDir()
	lecture := "The migratory patterns of these birds demonstrate an extraordinary capacity for navigation across continents and oceans without any instruments whatsoever."
	var b strings.Builder
	b.WriteString("INT. LECTURE HALL - DAY\n\n")
	for i := 0; i < 3; i++ {
		b.WriteString("HALE\n" + lecture + "\n\n")
	}
	script := filepath.Join(dir, "lecture.fountain")
	require.NoError(t, os.WriteFile(script, []byte(b.String()), 0o644))
	chars := filepath.Join(dir, "characters.json")
	require.NoError(t, os.WriteFile(chars, []byte(`[{"name": "Hale", "archetype": "professor"}]`), 0o644))

	cfg := &config.Config{UnitWords: 2500, Seed: 1, Pipeline: pipeline.DefaultConfig()}
	profiles, err := loadCharacters(chars)
	require.NoError(t, err)
	sf, err := loadScreenplay(script, cfg, profiles)
	require.NoError(t, err)
	require.Len(t, sf.job.Characters, 1)

	decisions := analyzeScreenplay(cfg, sf)
	require.Len(t, decisions, 1)
	require.Len(t, decisions[0].SoftNotes, 1)
	assert.Contains(t, decisions[0].SoftNotes[0], "HALE lectures")

	withoutProfiles, err := loadScreenplay(script, cfg, nil)
	require.NoError(t, err)
	assert.Empty(t, analyzeScreenplay(cfg, withoutProfiles)[0].SoftNotes)
}
