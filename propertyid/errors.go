package propertyid

import (
	"errors"
	"fmt"
)

// ErrInvalidID matches every *InvalidIDError via errors.Is.
var ErrInvalidID = errors.New("propertyid: invalid property id")

// InvalidIDError is returned when an identifier does not match Pattern.
type InvalidIDError struct {
	// ID is the rejected input, verbatim.
	ID string

	// Pattern is the grammar the input was checked against.
	Pattern string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("propertyid: invalid property id %q; must conform to regular expression: %s", e.ID, e.Pattern)
}

// Is reports whether target is ErrInvalidID.
func (e *InvalidIDError) Is(target error) bool {
	return target == ErrInvalidID
}
