package catalog

import (
	"fmt"

	"fablab/internal/pkg/errs"
)

// Visibility is the only lifecycle a catalog item has.
type Visibility int

const (
	// UnknownVisibility catches uninitialized values.
	UnknownVisibility Visibility = iota
	Visible
	Deleted
)

func getVisibilityStrings() map[Visibility]string {
	return map[Visibility]string{
		UnknownVisibility: "unknown",
		Visible:           "visible",
		Deleted:           "deleted",
	}
}

func (v Visibility) String() string {
	if str, ok := getVisibilityStrings()[v]; ok {
		return str
	}
	return "unknown"
}

func (v Visibility) Validate() error {
	if v != Visible && v != Deleted {
		return errs.NewValueIsInvalidErrorWithCause("visibility", fmt.Errorf("%d is not a valid visibility", v))
	}
	return nil
}

// ParseVisibility reads the persisted form written by String.
func ParseVisibility(s string) (Visibility, error) {
	for v, str := range getVisibilityStrings() {
		if str == s && v != UnknownVisibility {
			return v, nil
		}
	}
	return UnknownVisibility, errs.NewValueIsInvalidErrorWithCause("visibility", fmt.Errorf("%q is not a valid visibility", s))
}
