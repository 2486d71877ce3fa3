package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/sheetload/pkg/sheetload"
)

// InteractiveApprover asks the user to type the table name before a drop.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
}

// NewInteractiveApprover creates an InteractiveApprover on stdin and stderr.
func NewInteractiveApprover(verbose bool) sheetload.Approver {
	return &InteractiveApprover{verbose: verbose, input: os.Stdin, output: os.Stderr}
}

// RequestApproval returns true only when the typed text equals table.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, table string) (bool, error) {
	fmt.Fprintf(a.output, "\nWARNING: table %s already exists and DropTable is set.\n", table)
	fmt.Fprintln(a.output, "Dropping it will permanently delete all of its rows.")
	fmt.Fprintf(a.output, "\nTo confirm, type the table name '%s' and press Enter: ", table)

	type answer struct {
		text string
		err  error
	}
	answers := make(chan answer, 1)

	go func() {
		line, err := bufio.NewReader(a.input).ReadString('\n')
		if err != nil && !(err == io.EOF && line != "") {
			answers <- answer{err: err}
			return
		}
		answers <- answer{text: strings.TrimSpace(line)}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(a.output)
		return false, ctx.Err()
	case ans := <-answers:
		if ans.err != nil {
			return false, fmt.Errorf("failed to read input: %w", ans.err)
		}
		if ans.text == table {
			fmt.Fprintln(a.output, "Confirmed. Dropping table...")
			return true, nil
		}
		fmt.Fprintf(a.output, "Input '%s' does not match table name '%s'. The table is kept.\n", ans.text, table)
		return false, nil
	}
}

var _ sheetload.Approver = (*InteractiveApprover)(nil)
