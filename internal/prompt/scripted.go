package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/vibedocs/pkg/types"
)

// Scripted answers prompts from a fixed list, in order. It records every
// question asked. When the answers run out it returns types.ErrAborted.
//
// Answer formats:
//   - Confirm: "y", "yes", "n", "no" (case-insensitive); "" takes the default.
//   - Select: an option label, or its zero-based index; "" takes the default.
//   - Input, Edit: the text; "" takes the default.
type Scripted struct {
	answers []string
	Asked   []string
}

// NewScripted creates a Scripted prompter.
func NewScripted(answers ...string) *Scripted {
	return &Scripted{answers: answers}
}

// Remaining returns the number of unused answers.
func (s *Scripted) Remaining() int {
	return len(s.answers)
}

func (s *Scripted) next(question string) (string, error) {
	s.Asked = append(s.Asked, question)
	if len(s.answers) == 0 {
		return "", fmt.Errorf("%w: no scripted answer for %q", types.ErrAborted, question)
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

// Confirm implements Prompter.
func (s *Scripted) Confirm(question string, def bool) (bool, error) {
	a, err := s.next(question)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(a)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not yes or no", types.ErrInvalidSelection, a)
}

// Select implements Prompter.
func (s *Scripted) Select(question string, options []string, def int) (int, error) {
	a, err := s.next(question)
	if err != nil {
		return 0, err
	}
	if a == "" {
		return def, nil
	}
	for i, opt := range options {
		if opt == a {
			return i, nil
		}
	}
	if i, err := strconv.Atoi(a); err == nil && i >= 0 && i < len(options) {
		return i, nil
	}
	return 0, fmt.Errorf("%w: %q not in %v", types.ErrInvalidSelection, a, options)
}

// Input implements Prompter.
func (s *Scripted) Input(question, def string) (string, error) {
	a, err := s.next(question)
	if err != nil {
		return "", err
	}
	if a == "" {
		return def, nil
	}
	return a, nil
}

// Edit implements Prompter.
func (s *Scripted) Edit(question, def string) (string, error) {
	return s.Input(question, def)
}
