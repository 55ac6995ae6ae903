package order

import (
	"fmt"

	"fablab/internal/pkg/errs"
)

// Status represents the lifecycle state of a printing.
// It implements a closed state machine; every transition method is exhaustive
// over the defined values.
//
// State transitions:
//
//	Draft ──form──> Formed ──complete──> Complete
//	  │               │
//	  │               └──reject──> Rejected
//	  │
//	  └──delete──> Deleted
//
// Delete is an administrative override and is accepted from any status.
// Complete, Rejected and Deleted are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the author's working cart. It is the only status in which
	// line items may change, and at most one exists per author.
	Draft

	// Formed means the author submitted the printing for moderation.
	Formed

	// Complete is set by a moderator; the total price is fixed at this point.
	Complete

	// Rejected is set by a moderator; no total price is computed.
	Rejected

	// Deleted is the administrative soft-delete state.
	Deleted
)

// getStatusStrings returns a map of Status values to their persisted names.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "unknown",
		Draft:    "draft",
		Formed:   "formed",
		Complete: "complete",
		Rejected: "rejected",
		Deleted:  "deleted",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:    "draft",
		Formed:   "formed",
		Complete: "complete",
		Rejected: "rejected",
		Deleted:  "deleted",
	}
}

// ListableStatuses are the statuses shown in order listings. Drafts are
// private working state and deleted printings are hidden.
func ListableStatuses() []Status {
	return []Status{Formed, Complete, Rejected}
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status, or "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no workflow transition leaves s.
func (s Status) IsTerminal() bool {
	switch s {
	case Complete, Rejected, Deleted:
		return true
	case Unknown, Draft, Formed:
		return false
	}
	return false
}

// IsListable reports whether printings in s appear in order listings.
func (s Status) IsListable() bool {
	switch s {
	case Formed, Complete, Rejected:
		return true
	case Unknown, Draft, Deleted:
		return false
	}
	return false
}

// ParseStatus reads a persisted or client-supplied status name.
func ParseStatus(name string) (Status, error) {
	for s, str := range getValidStatusStrings() {
		if str == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", name))
}

// ValidateMutable checks that line items and the display name may still change.
func (s Status) ValidateMutable() error {
	if s != Draft {
		return errs.NewStatusIsInvalidError(s.String(), "modify")
	}
	return nil
}

// Form transitions Draft to Formed.
func (s Status) Form() (Status, error) {
	if s != Draft {
		return Unknown, errs.NewStatusIsInvalidError(s.String(), "form")
	}
	return Formed, nil
}

// ValidateResolve checks that a moderator decision may be applied.
func (s Status) ValidateResolve() error {
	if s != Formed {
		return errs.NewStatusIsInvalidError(s.String(), "resolve")
	}
	return nil
}

// Resolve transitions Formed to Complete or Rejected according to decision.
func (s Status) Resolve(decision Decision) (Status, error) {
	if err := s.ValidateResolve(); err != nil {
		return Unknown, err
	}
	switch decision {
	case DecisionComplete:
		return Complete, nil
	case DecisionReject:
		return Rejected, nil
	case UnknownDecision:
	}
	return Unknown, decision.Validate()
}

// Delete always yields Deleted. It is an override, not a workflow step.
func (s Status) Delete() Status {
	return Deleted
}
