package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NoteIDs lists the note identifiers in the order they are generated.
var NoteIDs = []string{
	"summarize",
	"relevant_topics",
	"jargons",
	"references",
	"reference_relevant_topics",
}

// Note describes one LLM-generated document.
type Note struct {
	ID         string `yaml:"-"`
	OriginFile string `yaml:"origin_file"`
	FileName   string `yaml:"file_name"`
	FileNamePT string `yaml:"file_name_pt"`
	Prompt     string `yaml:"prompt"`
}

// LoadNotes reads the note catalogue and returns it in NoteIDs order.
// The document may be YAML or JSON.
func LoadNotes(path string) ([]Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read notes config: %w", err)
	}

	var raw map[string]Note
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse notes config: %w", err)
	}

	notes := make([]Note, 0, len(NoteIDs))
	for _, id := range NoteIDs {
		n, ok := raw[id]
		if !ok {
			return nil, fmt.Errorf("notes config: missing %q", id)
		}
		if n.OriginFile == "" || n.FileName == "" || n.Prompt == "" {
			return nil, fmt.Errorf("notes config: %q needs origin_file, file_name and prompt", id)
		}
		if n.FileNamePT == "" {
			n.FileNamePT = n.FileName
		}
		n.ID = id
		notes = append(notes, n)
	}
	return notes, nil
}
