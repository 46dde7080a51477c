package story

import "strings"

type Archetype string

const (
	ArchetypeProfessor Archetype = "professor"
	ArchetypeEveryman  Archetype = "everyman"
	ArchetypeRebel     Archetype = "rebel"
	ArchetypeMentor    Archetype = "mentor"
	ArchetypeChild     Archetype = "child"
	ArchetypeAuthority Archetype = "authority"
	ArchetypeTrickster Archetype = "trickster"
)

var archetypes = []Archetype{
	ArchetypeProfessor,
	ArchetypeEveryman,
	ArchetypeRebel,
	ArchetypeMentor,
	ArchetypeChild,
	ArchetypeAuthority,
	ArchetypeTrickster,
}

// ParseArchetype maps free text onto the closed archetype set. Unknown values
// fall back to everyman.
func ParseArchetype(raw string) (Archetype, bool) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	for _, a := range archetypes {
		if string(a) == raw {
			return a, true
		}
	}
	return ArchetypeEveryman, false
}

type CharacterProfile struct {
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Archetype   Archetype `json:"archetype"`
	VoiceTraits []string  `json:"voice_traits"`
}

// CueName is the form a character's name takes on a screenplay cue line.
func (p CharacterProfile) CueName() string {
	return strings.ToUpper(strings.TrimSpace(p.Name))
}

// FindProfile looks a cue name up in profiles.
func FindProfile(profiles []CharacterProfile, cue string) (CharacterProfile, bool) {
	cue = strings.ToUpper(strings.TrimSpace(cue))
	for _, p := range profiles {
		if p.CueName() == cue {
			return p, true
		}
	}
	return CharacterProfile{}, false
}
