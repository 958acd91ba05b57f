package rules

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"matguard/domain/core"
	"matguard/domain/matlab"
)

// Engine evaluates rule sets with bounded concurrency. Every rule is an
// independent read-only scan of the same script, so they fan out freely; the
// weighted semaphore keeps regex work from swamping the scheduler on large
// rule sets. Results come back in rule-set order.
type Engine struct {
	sem *semaphore.Weighted
}

// DefaultConcurrency bounds simultaneous rule evaluations
const DefaultConcurrency = 8

// NewEngine creates a rule engine with the given concurrency bound
func NewEngine(maxConcurrent int64) *Engine {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Engine{sem: semaphore.NewWeighted(maxConcurrent)}
}

// EvaluateAll runs every rule against the script and returns results in
// rule-set order
func (e *Engine) EvaluateAll(ctx context.Context, s *matlab.Script, ruleSet []Rule) ([]CheckResult, error) {
	if len(ruleSet) == 0 {
		return nil, core.ErrNoRules
	}

	results := make([]CheckResult, len(ruleSet))
	var wg sync.WaitGroup

	for i, rule := range ruleSet {
		if err := e.sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		go func(idx int, r Rule) {
			defer wg.Done()
			defer e.sem.Release(1)
			results[idx] = r.Evaluate(s)
		}(i, rule)
	}

	wg.Wait()
	return results, nil
}

// Tally counts gate results: passed gates, total gates
func Tally(results []CheckResult) (passed, total int) {
	for _, r := range results {
		if !r.Gate {
			continue
		}
		total++
		if r.Passed {
			passed++
		}
	}
	return passed, total
}
