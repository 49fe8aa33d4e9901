// Package lock provides short-lived keyed mutual exclusion used to keep at
// most one outstanding request per key.
package lock

import (
	"context"
	"errors"
	"time"
)

var ErrLocked = errors.New("lock is already held")

// Locker acquires a keyed lock that expires after ttl. The returned release
// function is safe to call more than once.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}
