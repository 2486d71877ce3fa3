package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// PressAnyKeyPrompt is shown before WaitForKey blocks.
const PressAnyKeyPrompt = "Press any key to exit..."

// WaitForKey shows PressAnyKeyPrompt and blocks until a key is pressed or
// ctx ends. When in is a terminal a single key is read in raw mode;
// otherwise one line is consumed. End of input counts as a key press.
func WaitForKey(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprint(out, PressAnyKeyPrompt)
	defer fmt.Fprintln(out)

	read := func() error {
		_, err := bufio.NewReader(in).ReadString('\n')
		return err
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		state, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return fmt.Errorf("failed to switch terminal to raw mode: %w", err)
		}
		defer term.Restore(int(f.Fd()), state)

		read = func() error {
			_, err := f.Read(make([]byte, 1))
			return err
		}
	}

	done := make(chan error, 1)
	go func() { done <- read() }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read key press: %w", err)
		}
		return nil
	}
}
