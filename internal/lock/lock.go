package lock

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotAcquired = errors.New("booking lock not acquired")

// Locker serialises work on a key. release must be called exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

func BookingKey(date, room string) string {
	return fmt.Sprintf("booking:%s:%s", date, room)
}
