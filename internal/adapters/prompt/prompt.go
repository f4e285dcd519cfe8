// Package prompt talks to the user over plain text streams, for pipes and
// terminals where the TUI is not wanted.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"shelfmerge/internal/application"
)

// Prompter reads answers line by line
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a prompter over in and out
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Choose asks until the answer is one of choices (case-insensitive) and returns
// it lower-cased. End of input yields application.ErrAborted.
func (p *Prompter) Choose(ctx context.Context, question string, choices ...string) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		fmt.Fprint(p.out, question)
		answer, err := p.line()
		if err != nil {
			return "", err
		}
		answer = strings.ToLower(answer)
		for _, c := range choices {
			if answer == c {
				return answer, nil
			}
		}
		fmt.Fprintln(p.out, "Invalid, please try again.")
	}
}

// Pause waits for the user to press enter
func (p *Prompter) Pause(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fmt.Fprint(p.out, "Press enter to continue...")
	_, err := p.line()
	return err
}

func (p *Prompter) line() (string, error) {
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		return "", application.ErrAborted
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// IsAbort reports whether err means the user left the prompt
func IsAbort(err error) bool {
	return errors.Is(err, application.ErrAborted)
}
