package repository

import (
	"context"

	"telegram-referral-gate/internal/domain/model"
)

// UserRepository is the single-table registry behind the referral program.
//
// Unknown users read as zero values: Points returns 0 and InviteSent returns
// false for ids that were never registered.
type UserRepository interface {
	// Insert adds the row if absent and reports whether it was created.
	// Re-inserting an existing id is a no-op (never re-attributes a referral
	// or resets points).
	Insert(ctx context.Context, tx Tx, u *model.User) (bool, error)
	FindByID(ctx context.Context, tx Tx, id int64) (*model.User, error)
	// IncrementPoints credits one referral point. If no row matches the id
	// the statement affects zero rows and the credit is silently dropped.
	IncrementPoints(ctx context.Context, tx Tx, id int64) error
	Points(ctx context.Context, tx Tx, id int64) (int, error)
	InviteSent(ctx context.Context, tx Tx, id int64) (bool, error)
	// MarkInviteSent idempotently sets the flag; once true it is never reset.
	MarkInviteSent(ctx context.Context, tx Tx, id int64) error
	ListIDs(ctx context.Context, tx Tx) ([]int64, error)
}
