// Package content generates IB Computer Science teaching material (quizzes,
// worksheets, lesson plans, learning modules and IA guidance) through the AI
// gateway, validating structured output against embedded JSON schemas.
package content

// QuizType selects the question style of a quiz.
type QuizType string

const (
	QuizMultipleChoice QuizType = "multiple-choice"
	QuizTrueFalse      QuizType = "true-false"
	QuizShortAnswer    QuizType = "short-answer"
	QuizMixed          QuizType = "mixed"
)

// Valid reports whether t is a known quiz type.
func (t QuizType) Valid() bool {
	switch t {
	case QuizMultipleChoice, QuizTrueFalse, QuizShortAnswer, QuizMixed:
		return true
	}
	return false
}

// Quiz is a generated set of questions on one topic.
type Quiz struct {
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizQuestion is one quiz item. Options is empty for short-answer questions,
// whose CorrectAnswer is a model answer.
type QuizQuestion struct {
	Type          QuizType `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Worksheet is an exam-style worksheet of multi-part questions.
type Worksheet struct {
	Title     string              `json:"title"`
	Questions []WorksheetQuestion `json:"questions"`
}

// TotalMarks sums the marks of every part.
func (w Worksheet) TotalMarks() int {
	total := 0
	for _, q := range w.Questions {
		for _, p := range q.Parts {
			total += p.Marks
		}
	}
	return total
}

type WorksheetQuestion struct {
	Title string          `json:"title"`
	Parts []WorksheetPart `json:"parts"`
}

type WorksheetPart struct {
	Prompt      string `json:"prompt"`
	Marks       int    `json:"marks"`
	ModelAnswer string `json:"modelAnswer"`
}

// LessonPlan is a single-lesson plan with timed activities.
type LessonPlan struct {
	Title              string           `json:"title"`
	LearningObjectives []string         `json:"learningObjectives"`
	Activities         []LessonActivity `json:"activities"`
}

// Duration returns the planned lesson length in minutes.
func (l LessonPlan) Duration() int {
	total := 0
	for _, a := range l.Activities {
		total += a.Duration
	}
	return total
}

type LessonActivity struct {
	Title                 string `json:"title"`
	Description           string `json:"description"`
	Duration              int    `json:"duration"`
	InteractiveSuggestion string `json:"interactiveSuggestion"`
}

// BlockType is the kind of a learning module content block.
type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockCode      BlockType = "code"
	BlockList      BlockType = "list"
	BlockQuote     BlockType = "quote"
)

// LearningModule teaches one sub-topic.
type LearningModule struct {
	CoreConcept     []ContentBlock  `json:"coreConcept"`
	KeyVocabulary   []KeyTerm       `json:"keyVocabulary"`
	ThinkingRoutine ThinkingRoutine `json:"thinkingRoutine"`
	RealWorldLink   string          `json:"realWorldLink"`
}

// ContentBlock is a piece of the core concept explanation. List blocks hold
// one item per line.
type ContentBlock struct {
	Type    BlockType `json:"type"`
	Content string    `json:"content"`
}

type KeyTerm struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// ThinkingRoutine is a Project Zero visible-thinking routine.
type ThinkingRoutine struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
}

// IAHelpType selects the kind of Internal Assessment guidance.
type IAHelpType string

const (
	IAHelpIdeas IAHelpType = "ideas"
	IAHelpPlan  IAHelpType = "plan"
)

// Valid reports whether t is a known IA help type.
func (t IAHelpType) Valid() bool {
	return t == IAHelpIdeas || t == IAHelpPlan
}
