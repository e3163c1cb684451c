// Package types
package types

import (
	"errors"
)

var ErrRecordNotFound = errors.New("record not found")
var ErrUnsupportedRecord = errors.New("unsupported record shape")
