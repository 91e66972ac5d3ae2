package syllabus

import "github.com/p-n-ai/ibcs-hub/internal/activity"

// Topic is one syllabus area (e.g. B2 Programming) loaded from YAML.
type Topic struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Color       string     `yaml:"color" json:"color"`
	SubTopics   []SubTopic `yaml:"subtopics" json:"subtopics"`
	// Notes holds the optional teaching notes from <file>.notes.md.
	Notes string `yaml:"-" json:"notes,omitempty"`
}

// SubTopic is a syllabus statement. Sub-topics with an Activity open an
// interactive exercise instead of a generated learning module.
type SubTopic struct {
	ID       string        `yaml:"id" json:"id"`
	Title    string        `yaml:"title" json:"title"`
	Prompt   string        `yaml:"prompt" json:"prompt"`
	Activity activity.Kind `yaml:"activity,omitempty" json:"activity,omitempty"`
}

// Interactive reports whether the sub-topic opens an activity.
func (s SubTopic) Interactive() bool {
	return s.Activity != ""
}
