package editor

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"
)

// ErrDialogCancelled is returned by a Prompter when the user dismisses the dialog.
var ErrDialogCancelled = errors.New("editor: dialog cancelled")

// Prompter shows a modal text-input dialog and blocks until it is answered or cancelled.
type Prompter interface {
	Show(ctx context.Context, title, message string) (string, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context, title, message string) (string, error)

// Show calls f.
func (f PrompterFunc) Show(ctx context.Context, title, message string) (string, error) {
	return f(ctx, title, message)
}

// HuhPrompter asks on the terminal.
type HuhPrompter struct{}

// Show runs a one-field form. Aborting (ctrl+c/esc) or cancelling ctx yields ErrDialogCancelled.
func (HuhPrompter) Show(ctx context.Context, title, message string) (string, error) {
	var value string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(message).
				Value(&value),
		),
	).RunWithContext(ctx)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", ErrDialogCancelled
		}
		return "", err
	}
	return value, nil
}
