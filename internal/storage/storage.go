package storage

import "context"

// Store persists an uploaded payment proof under the given key and
// returns the URL clients attach to their registration.
type Store interface {
	Save(ctx context.Context, key, contentType string, data []byte) (string, error)
}
