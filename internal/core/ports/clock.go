package ports

import "time"

// Clock supplies timestamps to the use cases.
type Clock interface {
	Now() time.Time
}
