package content

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/p-n-ai/ibcs-hub/internal/ai"
	"github.com/p-n-ai/ibcs-hub/internal/platform/cache"
)

var (
	ErrInvalidContent = errors.New("invalid generated content")
	ErrBudgetExceeded = errors.New("token budget exceeded")
	ErrInvalidRequest = errors.New("invalid content request")
)

const (
	minCount = 1
	maxCount = 20
)

const (
	moduleSystemPrompt = "You are a helpful tutor for IB Computer Science students. " +
		"Your explanations should be clear, concise, and structured for an interactive display. " +
		"For the 'thinkingRoutine' section, you MUST select ONE of the following routines that is most appropriate for the topic: " +
		"'See-Think-Wonder', 'Connect-Extend-Challenge', 'The 4 Cs (Connections, Challenges, Concepts, Changes)', " +
		"'Circle of Viewpoints', 'What Makes You Say That?', or 'Think-Puzzle-Explore'. " +
		"After selecting a routine, provide its name, a brief description, and a specific prompt tailored to the computer science concept. " +
		"Generate content as a series of blocks (headings, paragraphs, code, lists). " +
		"Use visually descriptive language and analogies. For 'list' blocks, separate items with newlines."

	quizSystemPrompt = "You are an expert quiz creator for IB Computer Science. " +
		"Adhere strictly to the requested question type and number. " +
		"For 'mixed' quizzes, provide a variety of question types. " +
		"For 'short-answer' questions, the options array MUST be empty and the correctAnswer field must contain a detailed model answer."

	worksheetSystemPrompt = "You are an experienced IB Computer Science examiner writing practice papers in the style of the official specimen papers."

	lessonPlanSystemPrompt = "You are an expert instructional designer creating lesson plans for IB Computer Science teachers. " +
		"The plans should be practical, engaging, and explicitly mention how to use modern interactive classroom tools like Curipod."

	iaSystemPrompt = "You are a helpful assistant for IB Computer Science students working on their Internal Assessment (IA). " +
		"Your advice should be practical, structured, and align with IB guidelines."
)

// Generator produces teaching content through an AI completer. Results are
// cached by prompt and token usage is charged per content kind.
type Generator struct {
	ai     ai.Completer
	cache  cache.Store
	ttl    time.Duration
	budget ai.BudgetChecker
}

// Option configures a Generator.
type Option func(*Generator)

// WithCache stores generated content in store for ttl.
func WithCache(store cache.Store, ttl time.Duration) Option {
	return func(g *Generator) {
		g.cache = store
		g.ttl = ttl
	}
}

// WithBudget enforces token budgets per content kind.
func WithBudget(b ai.BudgetChecker) Option {
	return func(g *Generator) {
		g.budget = b
	}
}

// NewGenerator creates a content generator.
func NewGenerator(completer ai.Completer, opts ...Option) *Generator {
	g := &Generator{ai: completer}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// request is one content generation call. An empty kind asks for plain text.
// Fresh requests bypass the cache so each practice set is new.
type request struct {
	task        ai.TaskType
	kind        Kind
	system      string
	prompt      string
	temperature float64
	fresh       bool
}

// Quiz generates n questions (clamped to 1..20) about topic.
func (g *Generator) Quiz(ctx context.Context, topic string, n int, quizType QuizType) (Quiz, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Quiz{}, fmt.Errorf("%w: topic is required", ErrInvalidRequest)
	}
	if !quizType.Valid() {
		return Quiz{}, fmt.Errorf("%w: unknown quiz type %q", ErrInvalidRequest, quizType)
	}
	n = clampCount(n)

	var typeDescription string
	switch quizType {
	case QuizMultipleChoice:
		typeDescription = "a multiple-choice quiz with 4 options per question."
	case QuizTrueFalse:
		typeDescription = "a true/false quiz."
	case QuizShortAnswer:
		typeDescription = "a short-answer quiz where the correctAnswer field contains a model answer."
	case QuizMixed:
		typeDescription = "a quiz with a mix of multiple-choice, true/false, and short-answer questions."
	}

	prompt := fmt.Sprintf("Generate a %d-question quiz about %q for an IB Computer Science student. It should be %s "+
		"For each question, provide the question text, its type ('multiple-choice', 'true-false', or 'short-answer'), "+
		"the options (if applicable), the correct answer, and a brief explanation.", n, topic, typeDescription)

	quiz, err := generate[Quiz](ctx, g, request{
		task:   ai.TaskQuiz,
		kind:   KindQuiz,
		system: quizSystemPrompt,
		prompt: prompt,
		fresh:  true,
	})
	if err != nil {
		return Quiz{}, err
	}
	if len(quiz.Questions) > n {
		quiz.Questions = quiz.Questions[:n]
	}
	return quiz, nil
}

// Worksheet generates an exam-style worksheet with n main questions.
func (g *Generator) Worksheet(ctx context.Context, topic string, n int) (Worksheet, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Worksheet{}, fmt.Errorf("%w: topic is required", ErrInvalidRequest)
	}
	n = clampCount(n)

	prompt := fmt.Sprintf(`Generate a practice worksheet with %[1]d main questions about %[2]q for an IB Computer Science student. The worksheet must emulate the style of an official IB specimen paper, with multi-part questions.
For the overall worksheet, provide a 'title'.
The 'questions' array should contain %[1]d objects.
Each question object must have:
1. A 'title': A brief description of the question's theme (e.g., "Question 1: PaaS and Logic Circuits").
2. A 'parts' array: Containing multiple sub-questions.
Each part object in the 'parts' array must have:
1. A 'prompt': The specific question text for the student (e.g., "(a) Outline the function of an accumulator.").
2. 'marks': The number of marks awarded.
3. 'modelAnswer': A detailed model answer.
Use a variety of command words like 'Outline', 'State', 'Construct', 'Explain', and 'Discuss'.`, n, topic)

	ws, err := generate[Worksheet](ctx, g, request{
		task:   ai.TaskWorksheet,
		kind:   KindWorksheet,
		system: worksheetSystemPrompt,
		prompt: prompt,
		fresh:  true,
	})
	if err != nil {
		return Worksheet{}, err
	}
	if len(ws.Questions) > n {
		ws.Questions = ws.Questions[:n]
	}
	return ws, nil
}

// LessonPlan generates a 45-minute lesson plan for topic.
func (g *Generator) LessonPlan(ctx context.Context, topic string) (LessonPlan, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return LessonPlan{}, fmt.Errorf("%w: topic is required", ErrInvalidRequest)
	}

	prompt := fmt.Sprintf("Generate a 45-minute lesson plan for an IB Computer Science class on the topic of %q. "+
		"The plan should include clear learning objectives and a sequence of activities (starter, main, plenary). "+
		"For each activity, suggest how an interactive tool like Curipod could be used to enhance engagement "+
		"(e.g., by creating a poll, word cloud, or interactive drawing activity).", topic)

	return generate[LessonPlan](ctx, g, request{
		task:   ai.TaskLessonPlan,
		kind:   KindLessonPlan,
		system: lessonPlanSystemPrompt,
		prompt: prompt,
	})
}

// LearningModule generates a learning module for a sub-topic. With
// codeExamples the core concept includes Python examples.
func (g *Generator) LearningModule(ctx context.Context, subTopic string, codeExamples bool) (LearningModule, error) {
	subTopic = strings.TrimSpace(subTopic)
	if subTopic == "" {
		return LearningModule{}, fmt.Errorf("%w: sub-topic is required", ErrInvalidRequest)
	}

	prompt := fmt.Sprintf("For the IB Computer Science topic %q, generate an interactive learning module. "+
		"The core concept should be detailed, clear, and use visually descriptive language. "+
		"Also include a thinking routine based on Harvard's Project Zero.", subTopic)
	if codeExamples {
		prompt += "\nIn the 'coreConcept' section, provide plenty of clear code examples in Python."
	}

	return generate[LearningModule](ctx, g, request{
		task:        ai.TaskLearningModule,
		kind:        KindLearningModule,
		system:      moduleSystemPrompt,
		prompt:      prompt,
		temperature: 0.6,
	})
}

// IAHelp returns Internal Assessment guidance as markdown text.
func (g *Generator) IAHelp(ctx context.Context, helpType IAHelpType) (string, error) {
	var prompt string
	switch helpType {
	case IAHelpIdeas:
		prompt = "I am an IB Computer Science student looking for ideas for my Internal Assessment (IA). " +
			"Please generate 5 creative and achievable project ideas. For each idea, provide a brief description, " +
			"the computational context (e.g., OOP, database, simulation), and a potential challenge."
	case IAHelpPlan:
		prompt = "I am an IB Computer Science student starting my Internal Assessment (IA). " +
			"Based on the IA criteria (Problem Specification, Planning, System Overview, Development, Evaluation), " +
			"generate a generic but comprehensive project plan outline that I can adapt. Use markdown for structure."
	default:
		return "", fmt.Errorf("%w: unknown IA help type %q", ErrInvalidRequest, helpType)
	}

	out, err := g.complete(ctx, request{
		task:   ai.TaskIAHelp,
		system: iaSystemPrompt,
		prompt: prompt,
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func generate[T any](ctx context.Context, g *Generator, r request) (T, error) {
	var out T
	raw, err := g.complete(ctx, r)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: decoding %s: %v", ErrInvalidContent, r.kind, err)
	}
	return out, nil
}

// complete returns validated JSON for structured requests, or text.
func (g *Generator) complete(ctx context.Context, r request) ([]byte, error) {
	scope := r.task.String()
	key := cacheKey(r)
	cached := g.cache != nil && !r.fresh

	if cached {
		b, err := g.cache.Get(ctx, key)
		if err == nil {
			slog.Debug("content cache hit", "kind", scope)
			return b, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			slog.Warn("content cache read failed", "kind", scope, "error", err)
		}
	}

	if g.budget != nil {
		ok, err := g.budget.Check(scope)
		if err != nil {
			return nil, fmt.Errorf("checking budget: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w for %s", ErrBudgetExceeded, scope)
		}
	}

	req := ai.CompletionRequest{
		Messages: []ai.Message{
			{Role: "system", Content: r.system},
			{Role: "user", Content: r.prompt},
		},
		Task:        r.task,
		Temperature: r.temperature,
	}
	if r.kind != "" {
		def, err := SchemaFor(r.kind)
		if err != nil {
			return nil, err
		}
		req.Schema = &ai.Schema{Name: string(r.kind), Definition: def}
	}

	start := time.Now()
	resp, err := g.ai.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generating %s: %w", scope, err)
	}
	slog.Info("content generated",
		"kind", scope,
		"model", resp.Model,
		"tokens", resp.TotalTokens(),
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if g.budget != nil {
		if err := g.budget.Record(scope, resp.TotalTokens()); err != nil {
			slog.Warn("recording token usage failed", "kind", scope, "error", err)
		}
	}

	var out []byte
	if r.kind == "" {
		text := strings.TrimSpace(resp.Content)
		if text == "" {
			return nil, fmt.Errorf("%w: empty response", ErrInvalidContent)
		}
		out = []byte(text)
	} else {
		out = []byte(stripCodeFence(resp.Content))
		if err := Validate(r.kind, out); err != nil {
			return nil, err
		}
	}

	if cached {
		if err := g.cache.Set(ctx, key, out, g.ttl); err != nil {
			slog.Warn("content cache write failed", "kind", scope, "error", err)
		}
	}
	return out, nil
}

func cacheKey(r request) string {
	sum := blake2b.Sum256([]byte(r.system + "\x00" + r.prompt))
	return "content:" + r.task.String() + ":" + hex.EncodeToString(sum[:])
}

// stripCodeFence removes a surrounding markdown code fence such as ```json.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		return ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func clampCount(n int) int {
	return max(minCount, min(n, maxCount))
}
