// Package prompt asks the user questions. Flows depend on the Prompter
// interface so tests can drive them with scripted answers.
package prompt

// Prompter is the input source for interactive flows. Every method returns
// types.ErrAborted when the user cancels.
type Prompter interface {
	// Confirm asks a yes/no question.
	Confirm(question string, def bool) (bool, error)

	// Select asks the user to pick one option and returns its index.
	Select(question string, options []string, def int) (int, error)

	// Input asks for a single line of text, pre-filled with def.
	Input(question, def string) (string, error)

	// Edit asks for free-form multi-line text, pre-filled with def.
	Edit(question, def string) (string, error)
}

// Yes/No labels shared by Confirm implementations.
const (
	YesLabel = "Yes"
	NoLabel  = "No"
)
