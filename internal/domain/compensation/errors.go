package compensation

import "errors"

var (
	ErrItemNotFound = errors.New("catalog item not found")
	ErrUnknownKind  = errors.New("catalog must be benefits or deductions")
)
