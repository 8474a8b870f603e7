package ledger

import "errors"

// Guard failures are expected outcomes of concurrent use, not infrastructure
// faults. Callers match them with errors.Is and translate them into precise
// client-facing messages; anything else is a 500.
var (
	// ErrInsufficientBalance is returned when a guarded debit affects zero
	// rows because the balance is lower than the amount.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrOwnerNotFound is returned when a credit or debit targets a user or
	// team row that does not exist (or is deleted).
	ErrOwnerNotFound = errors.New("balance owner not found")

	// ErrDuplicateReference is returned when a transaction insert collides on
	// its idempotency reference.
	ErrDuplicateReference = errors.New("duplicate transaction reference")

	// ErrAlreadyFinalized is returned when finalizing a transaction that has
	// already left PENDING.
	ErrAlreadyFinalized = errors.New("transaction already finalized")

	// ErrAlreadyProcessed is returned when a one-way status flip finds the
	// row no longer in its expected pending state.
	ErrAlreadyProcessed = errors.New("already processed")

	// ErrConflict is returned when a conditional write lost a race against a
	// concurrent operation on the same row.
	ErrConflict = errors.New("concurrent update conflict")
)
