package core

import "context"

// SessionStorage is the durable home of session records. Memory is only a
// working cache in front of it.
type SessionStorage interface {
	// Save writes the complete record addressed by id. Failures come back
	// as *PersistenceError.
	Save(ctx context.Context, id string, record *SessionRecord) error
	// Load reads a record back. A missing id is ErrNotFound, not a failure.
	Load(ctx context.Context, id string) (*SessionRecord, error)
	// Delete removes the durable record. Deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error
}
