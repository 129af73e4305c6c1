package domain

import (
	"context"
	"fmt"
	"time"
)

// Lock is a lease-based exclusive claim on an operation+transaction pair.
// There is no explicit release: the lease expires on its own and the state
// guard rejects stale retries once the guarded event lands.
type Lock struct {
	ID         string
	HolderName string
}

// NewOperationLock builds the canonical "<verb>-<resource>-<transactionId>"
// lock id.
func NewOperationLock(verb, resource, transactionID, holder string) Lock {
	return Lock{
		ID:         fmt.Sprintf("%s-%s-%s", verb, resource, transactionID),
		HolderName: holder,
	}
}

// LockStore is a document store with a single atomic create-if-absent
// primitive. SaveIfAbsent returns false while a live lease exists for the
// same id.
type LockStore interface {
	SaveIfAbsent(ctx context.Context, lock Lock, lease time.Duration) (bool, error)
}
