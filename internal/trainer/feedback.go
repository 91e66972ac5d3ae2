// Package trainer provides the session controller shared by the interactive
// activities: problem generation, guarded answer submission, paced advance and
// reset.
package trainer

// Phase is a session's position in the answer-evaluation state machine.
type Phase string

const (
	PhaseAwaitingInput Phase = "awaiting_input"
	PhaseEvaluating    Phase = "evaluating"
	PhaseAdvancing     Phase = "advancing"
	PhaseRejected      Phase = "rejected"
	PhaseComplete      Phase = "complete"
)

// AcceptsInput reports whether a submission may be evaluated in this phase.
func (p Phase) AcceptsInput() bool {
	return p == PhaseAwaitingInput || p == PhaseRejected
}

// FeedbackKind classifies the result of evaluating one submission.
type FeedbackKind string

const (
	FeedbackCorrect    FeedbackKind = "correct"
	FeedbackIncorrect  FeedbackKind = "incorrect"
	FeedbackUnanswered FeedbackKind = "unanswered"
)

// Feedback is the transient message shown after a submission.
type Feedback struct {
	Kind        FeedbackKind `json:"kind"`
	Message     string       `json:"message"`
	Explanation string       `json:"explanation,omitempty"`
}

// Correct builds correct feedback.
func Correct(message, explanation string) *Feedback {
	return &Feedback{Kind: FeedbackCorrect, Message: message, Explanation: explanation}
}

// Incorrect builds incorrect feedback. The explanation carries the hint.
func Incorrect(message, explanation string) *Feedback {
	return &Feedback{Kind: FeedbackIncorrect, Message: message, Explanation: explanation}
}

// Unanswered builds feedback for a submission that is missing its required input.
func Unanswered(message string) *Feedback {
	return &Feedback{Kind: FeedbackUnanswered, Message: message}
}

// Verdict is an exercise's judgement of one submission.
//
// A nil Feedback means the submission only edited progress (for example
// selecting a node) and is applied immediately. Final verdicts end the session
// immediately. A correct, non-final verdict with Changed set is applied after the
// session's pacing delay.
type Verdict[G any] struct {
	Feedback *Feedback
	Next     G
	Changed  bool
	Final    bool
}

// Edit returns a verdict that replaces progress without judging it.
func Edit[G any](next G) Verdict[G] {
	return Verdict[G]{Next: next, Changed: true}
}

// Advance returns a correct verdict that moves to next.
func Advance[G any](fb *Feedback, next G, final bool) Verdict[G] {
	return Verdict[G]{Feedback: fb, Next: next, Changed: true, Final: final}
}

// Reject returns a verdict that leaves progress untouched.
func Reject[G any](fb *Feedback) Verdict[G] {
	return Verdict[G]{Feedback: fb}
}

// Conclude returns a final verdict for one-shot exercises.
func Conclude[G any](fb *Feedback, next G) Verdict[G] {
	return Verdict[G]{Feedback: fb, Next: next, Changed: true, Final: true}
}
