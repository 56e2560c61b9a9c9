// Package confirm asks a single yes/no question on an interactive terminal.
package confirm

import "github.com/charmbracelet/huh"

// Func asks the user a yes/no question and returns the answer.
type Func func(title string) (bool, error)

// Ask presents a confirmation form. The default answer is no, so pressing
// enter on a destructive prompt is safe.
func Ask(title string) (bool, error) {
	var ok bool

	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		return false, err
	}

	return ok, nil
}
