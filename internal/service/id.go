package service

import "github.com/oklog/ulid/v2"

// newID returns a fresh ULID string. ULIDs sort by creation time, which
// keeps id ordering consistent with createdAt ordering.
func newID() string {
	return ulid.Make().String()
}
