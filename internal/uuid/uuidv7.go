// Package uuid generates the primary keys of every table.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7 string. Ids created later in the same process sort
// after earlier ones, also within one millisecond, so ordering by id follows
// insertion order.
func New() string {
	return googleuuid.Must(googleuuid.NewV7()).String()
}
