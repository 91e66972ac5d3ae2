// Package syllabus loads the IB Computer Science syllabus explorer content.
package syllabus

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/p-n-ai/ibcs-hub/internal/activity"
)

// defaultActivities maps sub-topic IDs to their interactive exercise when the
// YAML does not name one.
var defaultActivities = map[string]activity.Kind{
	"a1-2-1":             activity.KindNumberConversion,
	"a1-2-5":             activity.KindLogicGate,
	"b2-4-3":             activity.KindBubbleSort,
	"b4-1-3-interactive": activity.KindLinkedList,
	"b4-1-4-interactive": activity.KindBinarySearchTree,
}

// codeExamplePrefixes marks the programming topics whose learning modules
// include Python code examples.
var codeExamplePrefixes = []string{"b2-", "b3-"}

// Loader loads and caches syllabus topics from the filesystem.
type Loader struct {
	rootDir   string
	topics    map[string]Topic
	subTopics map[string]string // sub-topic ID -> topic ID
	mu        sync.RWMutex
}

// NewLoader creates a new syllabus loader and loads all topics under rootDir.
func NewLoader(rootDir string) (*Loader, error) {
	l := &Loader{
		rootDir:   rootDir,
		topics:    make(map[string]Topic),
		subTopics: make(map[string]string),
	}

	if err := l.loadAll(); err != nil {
		return nil, fmt.Errorf("loading syllabus: %w", err)
	}

	slog.Info("syllabus loaded", "topics", len(l.topics), "subtopics", len(l.subTopics))
	return l, nil
}

// AllTopics returns all topics sorted by ID.
func (l *Loader) AllTopics() []Topic {
	l.mu.RLock()
	defer l.mu.RUnlock()
	topics := make([]Topic, 0, len(l.topics))
	for _, t := range l.topics {
		topics = append(topics, t)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].ID < topics[j].ID })
	return topics
}

// GetTopic returns a topic by ID.
func (l *Loader) GetTopic(id string) (Topic, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.topics[id]
	return t, ok
}

// FindSubTopic returns a sub-topic and the topic that contains it.
func (l *Loader) FindSubTopic(id string) (Topic, SubTopic, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	topicID, ok := l.subTopics[id]
	if !ok {
		return Topic{}, SubTopic{}, false
	}
	t := l.topics[topicID]
	for _, s := range t.SubTopics {
		if s.ID == id {
			return t, s, true
		}
	}
	return Topic{}, SubTopic{}, false
}

// ActivityFor returns the interactive activity for a sub-topic, if any.
func (l *Loader) ActivityFor(subTopicID string) (activity.Kind, bool) {
	_, s, ok := l.FindSubTopic(subTopicID)
	if !ok || !s.Interactive() {
		return "", false
	}
	return s.Activity, true
}

// WantsCodeExamples reports whether learning modules for the topic should
// include code examples.
func WantsCodeExamples(topicID string) bool {
	for _, p := range codeExamplePrefixes {
		if strings.HasPrefix(topicID, p) {
			return true
		}
	}
	return false
}

func (l *Loader) loadAll() error {
	return filepath.Walk(l.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		switch {
		case strings.HasSuffix(path, ".notes.md"):
			return l.loadNotes(path)
		case strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml"):
			return l.loadTopic(path)
		}
		return nil
	})
}

func (l *Loader) loadTopic(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var topic Topic
	if err := yaml.Unmarshal(data, &topic); err != nil {
		slog.Warn("skipping invalid topic YAML", "path", path, "error", err)
		return nil
	}

	if topic.ID == "" {
		return nil // Not a topic file
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if prev, ok := l.topics[topic.ID]; ok {
		topic.Notes = prev.Notes
	}
	for i, s := range topic.SubTopics {
		if s.Activity == "" {
			s.Activity = defaultActivities[s.ID]
		}
		if s.Activity != "" && !s.Activity.Valid() {
			slog.Warn("ignoring unknown activity", "path", path, "subtopic", s.ID, "activity", s.Activity)
			s.Activity = ""
		}
		topic.SubTopics[i] = s
		l.subTopics[s.ID] = topic.ID
	}
	l.topics[topic.ID] = topic

	return nil
}

func (l *Loader) loadNotes(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Derive topic ID from the matching YAML file.
	yamlPath := strings.TrimSuffix(path, ".notes.md") + ".yaml"
	yamlData, err := os.ReadFile(yamlPath)
	if err != nil {
		return nil // No matching YAML, skip
	}

	var partial struct {
		ID string `yaml:"id"`
	}
	if err := yaml.Unmarshal(yamlData, &partial); err != nil || partial.ID == "" {
		return nil
	}

	l.mu.Lock()
	t := l.topics[partial.ID]
	t.ID = partial.ID
	t.Notes = string(data)
	l.topics[partial.ID] = t
	l.mu.Unlock()

	return nil
}
