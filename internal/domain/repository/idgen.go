package repository

import "context"

// IDGenerator hands out identifiers for new records. Numbers never repeat
// within one store.
type IDGenerator interface {
	NextOrderNumber(ctx context.Context) (string, error)
	NextPaymentID(ctx context.Context) (string, error)
}
