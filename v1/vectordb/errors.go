package vectordb

import "errors"

var (
	// ErrCollectionNotFound is returned for operations on a missing collection.
	ErrCollectionNotFound = errors.New("vectordb: collection not found")

	// ErrDimensionMismatch is returned when a vector does not match the
	// collection's vector size.
	ErrDimensionMismatch = errors.New("vectordb: vector dimension mismatch")

	// ErrInvalidArgument is returned for empty names, IDs or sizes.
	ErrInvalidArgument = errors.New("vectordb: invalid argument")
)

// IsCollectionNotFoundError checks if the error is a missing collection error.
func IsCollectionNotFoundError(err error) bool {
	return errors.Is(err, ErrCollectionNotFound)
}

// IsDimensionMismatchError checks if the error is a vector size mismatch.
func IsDimensionMismatchError(err error) bool {
	return errors.Is(err, ErrDimensionMismatch)
}
