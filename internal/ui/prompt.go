package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrInputClosed is returned when the input ends before a valid value was
// entered.
var ErrInputClosed = errors.New("input closed before a valid value was entered")

// ErrTooManyAttempts is returned when MaxAttempts invalid values were entered.
var ErrTooManyAttempts = errors.New("too many invalid attempts")

// Prompter asks the user for registration values.
type Prompter interface {
	// Instruct shows steps the user must perform before answering
	Instruct(title string, steps []string)

	// Prompt asks for one value, re-asking until validate accepts it
	Prompt(ctx context.Context, label string, validate func(string) error) (string, error)
}

// LinePrompter reads answers line by line. It is used when stdin is not a
// terminal.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer

	// MaxAttempts bounds the number of invalid answers per prompt; 0 means
	// unlimited.
	MaxAttempts int
}

// NewLinePrompter creates a prompter reading from r and writing to w.
// Nil arguments default to os.Stdin and os.Stdout.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &LinePrompter{in: bufio.NewReader(r), out: w}
}

// Instruct prints the steps in a box
func (p *LinePrompter) Instruct(title string, steps []string) {
	_, _ = fmt.Fprintln(p.out, RenderInstructions(title, steps, GetTerminalWidth()))
	_, _ = fmt.Fprintln(p.out)
}

// Prompt prints label and reads lines until one passes validate. Each
// rejected line prints the validation error and asks again.
func (p *LinePrompter) Prompt(ctx context.Context, label string, validate func(string) error) (string, error) {
	for attempt := 1; p.MaxAttempts == 0 || attempt <= p.MaxAttempts; attempt++ {
		_, _ = fmt.Fprint(p.out, PromptStyle.Render(label+": "))

		line, err := p.readLine(ctx)
		if err != nil {
			_, _ = fmt.Fprintln(p.out)
			return "", err
		}

		value := strings.TrimSpace(line)
		if validate == nil {
			return value, nil
		}
		verr := validate(value)
		if verr == nil {
			return value, nil
		}
		_, _ = fmt.Fprintln(p.out, ErrorMessageStyle.Render("  "+verr.Error()+". Try again or quit (Ctrl-C)."))
	}
	return "", ErrTooManyAttempts
}

// readLine reads one line, returning early if ctx is done. A final line
// without a newline is returned as is.
func (p *LinePrompter) readLine(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- result{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.err == io.EOF && r.line != "" {
			return r.line, nil
		}
		if r.err == io.EOF {
			return "", ErrInputClosed
		}
		if r.err != nil {
			return "", fmt.Errorf("failed to read input: %w", r.err)
		}
		return r.line, nil
	}
}
