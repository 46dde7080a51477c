package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"screenpass/internal/story"
)

var flagCharacters string

// characterEntry is one profile as written in a --characters file.
type characterEntry struct {
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Archetype   string   `json:"archetype"`
	VoiceTraits []string `json:"voice_traits"`
}

// loadCharacters reads a JSON array of character profiles. An empty path
// means no profiles. Unknown archetypes fall back to everyman with a
// warning.
func loadCharacters(path string) ([]story.CharacterProfile, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read characters: %w", err)
	}
	var entries []characterEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode characters: %w", err)
	}

	profiles := make([]story.CharacterProfile, 0, len(entries))
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("decode characters: entry %d has no name", i)
		}
		archetype, ok := story.ParseArchetype(e.Archetype)
		if !ok && e.Archetype != "" {
			slog.Warn("unknown archetype, using everyman", "character", name, "archetype", e.Archetype)
		}
		profiles = append(profiles, story.CharacterProfile{
			Name:        name,
			Role:        e.Role,
			Archetype:   archetype,
			VoiceTraits: e.VoiceTraits,
		})
	}
	return profiles, nil
}
