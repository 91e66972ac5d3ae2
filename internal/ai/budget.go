package ai

import (
	"fmt"
	"sync"
)

// BudgetChecker checks and records token usage against per-scope budgets. A
// scope is a content kind such as "quiz" or "lesson_plan".
type BudgetChecker interface {
	// Check returns true if the scope has budget remaining.
	Check(scope string) (bool, error)
	// Record records token usage for a scope.
	Record(scope string, tokens int) error
	// Usage returns current usage and the budget for a scope.
	Usage(scope string) (used int64, budget int64, err error)
}

// InMemoryBudget is an in-process budget tracker. Usage resets on restart.
type InMemoryBudget struct {
	mu      sync.RWMutex
	budgets map[string]int64 // scope -> budget limit
	usage   map[string]int64 // scope -> tokens used
}

// NewInMemoryBudget creates a new in-memory budget tracker.
func NewInMemoryBudget() *InMemoryBudget {
	return &InMemoryBudget{
		budgets: make(map[string]int64),
		usage:   make(map[string]int64),
	}
}

// SetBudget sets the token budget for a scope. A budget of zero or less
// removes the cap.
func (b *InMemoryBudget) SetBudget(scope string, tokens int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if tokens <= 0 {
		delete(b.budgets, scope)
		return
	}
	b.budgets[scope] = tokens
}

func (b *InMemoryBudget) Check(scope string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	budget, hasBudget := b.budgets[scope]
	if !hasBudget {
		// No budget set means unlimited.
		return true, nil
	}
	return b.usage[scope] < budget, nil
}

func (b *InMemoryBudget) Record(scope string, tokens int) error {
	if tokens < 0 {
		return fmt.Errorf("tokens must be non-negative, got %d", tokens)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.usage[scope] += int64(tokens)
	return nil
}

func (b *InMemoryBudget) Usage(scope string) (int64, int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.usage[scope], b.budgets[scope], nil
}
