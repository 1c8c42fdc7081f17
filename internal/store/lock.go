package store

import (
	"fmt"

	"github.com/gofrs/flock"

	"taskboard/internal/errors"
)

// DatabaseLock keeps a second store from serving the same database file
type DatabaseLock struct {
	flock *flock.Flock
}

// LockDatabase takes an exclusive lock on "<dbPath>.lock" without waiting.
// In-memory databases need no lock.
func LockDatabase(dbPath string) (*DatabaseLock, error) {
	if dbPath == ":memory:" {
		return &DatabaseLock{}, nil
	}

	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeDatabase, "failed to lock store database").
			WithContext("path", lock.Path())
	}
	if !locked {
		return nil, errors.WrapError(fmt.Errorf("%s is locked", lock.Path()), errors.ErrorTypeDatabase,
			"another store is already serving this database").WithContext("path", lock.Path())
	}
	return &DatabaseLock{flock: lock}, nil
}

// Unlock releases the lock
func (l *DatabaseLock) Unlock() error {
	if l.flock == nil {
		return nil
	}
	return l.flock.Unlock()
}
