package main

import (
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
)

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}

// closest returns the candidate nearest to input by edit distance, if it is
// close enough to be a plausible typo.
func closest(input string, candidates []string) (string, bool) {
	type scored struct {
		name string
		dist int
	}
	var ranked []scored
	for _, c := range candidates {
		ranked = append(ranked, scored{name: c, dist: levenshtein.ComputeDistance(input, c)})
	}
	if len(ranked) == 0 {
		return "", false
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].dist < ranked[j].dist })

	best := ranked[0]
	limit := len([]rune(input))/2 + 1
	if best.dist > limit {
		return "", false
	}
	return best.name, true
}

func didYouMean(input string, candidates []string, fallback string) string {
	if name, ok := closest(input, candidates); ok {
		return fmt.Sprintf("Did you mean %q?", name)
	}
	return fallback
}
