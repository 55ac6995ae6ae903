package order

import (
	"fmt"

	"fablab/internal/pkg/errs"
)

// Decision is a moderator's verdict on a formed printing.
type Decision int

const (
	UnknownDecision Decision = iota
	DecisionComplete
	DecisionReject
)

func (d Decision) String() string {
	switch d {
	case DecisionComplete:
		return "complete"
	case DecisionReject:
		return "reject"
	case UnknownDecision:
	}
	return "unknown"
}

func (d Decision) Validate() error {
	if d != DecisionComplete && d != DecisionReject {
		return errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%d is not one of complete, reject", d))
	}
	return nil
}

// ParseDecision accepts exactly "complete" or "reject".
func ParseDecision(s string) (Decision, error) {
	switch s {
	case "complete":
		return DecisionComplete, nil
	case "reject":
		return DecisionReject, nil
	}
	return UnknownDecision, errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%q is not one of complete, reject", s))
}
