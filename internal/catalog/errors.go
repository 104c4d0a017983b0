package catalog

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("product not found")

// NotFoundError names the id that was looked up. It matches ErrNotFound
// under errors.Is.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports the first schema violation of a candidate.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UploadError rejects an uploaded image before anything is written to disk.
type UploadError struct {
	Message string
}

func (e *UploadError) Error() string {
	return e.Message
}
