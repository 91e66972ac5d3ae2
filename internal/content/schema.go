package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Kind names a structured content type with an embedded schema.
type Kind string

const (
	KindQuiz           Kind = "quiz"
	KindWorksheet      Kind = "worksheet"
	KindLessonPlan     Kind = "lesson_plan"
	KindLearningModule Kind = "learning_module"
)

type compiledSchema struct {
	raw    json.RawMessage
	schema *gojsonschema.Schema
}

var (
	schemasOnce sync.Once
	schemas     map[Kind]compiledSchema
	schemasErr  error
)

func loadSchemas() (map[Kind]compiledSchema, error) {
	schemasOnce.Do(func() {
		out := make(map[Kind]compiledSchema)
		for _, k := range []Kind{KindQuiz, KindWorksheet, KindLessonPlan, KindLearningModule} {
			raw, err := schemaFS.ReadFile("schemas/" + string(k) + ".json")
			if err != nil {
				schemasErr = fmt.Errorf("reading %s schema: %w", k, err)
				return
			}
			s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
			if err != nil {
				schemasErr = fmt.Errorf("compiling %s schema: %w", k, err)
				return
			}
			out[k] = compiledSchema{raw: raw, schema: s}
		}
		schemas = out
	})
	return schemas, schemasErr
}

// SchemaFor returns the JSON Schema document for k.
func SchemaFor(k Kind) (json.RawMessage, error) {
	all, err := loadSchemas()
	if err != nil {
		return nil, err
	}
	s, ok := all[k]
	if !ok {
		return nil, fmt.Errorf("no schema for %q", k)
	}
	return s.raw, nil
}

// Validate checks doc against the schema for k. Violations are reported as
// ErrInvalidContent.
func Validate(k Kind, doc []byte) error {
	all, err := loadSchemas()
	if err != nil {
		return err
	}
	s, ok := all[k]
	if !ok {
		return fmt.Errorf("no schema for %q", k)
	}

	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidContent, strings.Join(msgs, "; "))
}
