// Package memstore keeps every repository in process memory. It backs the
// "memory" storage driver and the handler and use case tests.
package memstore

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newID() string { return primitive.NewObjectID().Hex() }

// now matches the millisecond precision of stored documents.
func now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }
