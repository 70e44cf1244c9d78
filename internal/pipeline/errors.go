package pipeline

import (
	"fmt"

	"github.com/spigell/resume-screener/internal/screening"
)

// InsufficientTextError is returned when too little text was extracted to analyse.
type InsufficientTextError struct {
	Length  int
	Minimum int
}

func (e *InsufficientTextError) Error() string {
	return fmt.Sprintf("insufficient text for analysis: %d characters, need at least %d", e.Length, e.Minimum)
}

// RejectedError is returned when the classifier decided the text is not a resume.
type RejectedError struct {
	Validation screening.Result
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("document rejected as non-resume (score %.1f, method %s): %s",
		e.Validation.Score, e.Validation.Method, e.Validation.Reason)
}
