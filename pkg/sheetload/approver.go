package sheetload

import "context"

// Approver handles confirmation before destructive operations.
//
// Implementations:
//   - ForcedApprover: shows a countdown and approves
//   - InteractiveApprover: asks the user to type the table name
type Approver interface {
	// RequestApproval asks for confirmation before dropping the named table.
	// Returns false without error when the user declines.
	RequestApproval(ctx context.Context, table string) (bool, error)
}
