package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vvka-141/sheetload/pkg/sheetload"
)

// ForcedApprover approves table drops without asking, after a short
// countdown during which Ctrl+C still cancels the run. Used with --force.
type ForcedApprover struct {
	verbose   bool
	countdown time.Duration
	output    io.Writer
	sleepFn   func(time.Duration)
}

// NewForcedApprover creates a ForcedApprover writing to stderr.
func NewForcedApprover(verbose bool) sheetload.Approver {
	return &ForcedApprover{
		verbose:   verbose,
		countdown: sheetload.DefaultDropApprovalCountdown,
		output:    os.Stderr,
		sleepFn:   time.Sleep,
	}
}

// RequestApproval counts down and approves.
func (a *ForcedApprover) RequestApproval(ctx context.Context, table string) (bool, error) {
	fmt.Fprintf(a.output, "\nDANGER: table %s will be dropped and recreated. Its rows will be lost.\n", table)

	seconds := int(a.countdown.Seconds())
	if a.countdown == 0 {
		seconds = int(sheetload.DefaultDropApprovalCountdown.Seconds())
	}
	for i := seconds; i > 0; i-- {
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(a.output)
			return false, err
		}
		fmt.Fprintf(a.output, "\rDropping in: %d seconds... (Press Ctrl+C to cancel)", i)
		a.sleepFn(time.Second)
	}
	if err := ctx.Err(); err != nil {
		fmt.Fprintln(a.output)
		return false, err
	}

	fmt.Fprintf(a.output, "\rProceeding with drop of %s...                              \n", table)
	return true, nil
}

var _ sheetload.Approver = (*ForcedApprover)(nil)
