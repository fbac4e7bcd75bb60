package delivery

import (
	"fmt"
	"strings"

	"warehouse/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery.
//
// State transitions:
//
//	Pending ──> Approved ──> Processing ──> Finished
//	   │                        ▲
//	   └────────────────────────┘
//	 (an entry may start before approval)
//
// Approval is tracked by its own flag; approving a delivery that is already
// processing keeps its status.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Approved
	Processing
	Finished
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Approved:   "Approved",
		Processing: "Processing",
		Finished:   "Finished",
	}
}

func (s Status) Validate() error {
	if s < Pending || s > Finished {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ParseStatus accepts the String form, case-insensitively.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(str, s) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Approve returns the status after approval. Only Pending moves forward.
func (s Status) Approve() (Status, error) {
	switch s {
	case Pending:
		return Approved, nil
	case Processing, Finished:
		return s, nil
	default:
		return 0, errs.NewInvalidStateTransitionError(EntityType, s.String(), "approve")
	}
}

// StartProcessing moves a delivery into Processing. A delivery already processing stays there.
func (s Status) StartProcessing() (Status, error) {
	switch s {
	case Pending, Approved, Processing:
		return Processing, nil
	default:
		return 0, errs.NewInvalidStateTransitionError(EntityType, s.String(), "start processing")
	}
}

func (s Status) FinishProcessing() (Status, error) {
	if s != Processing {
		return 0, errs.NewInvalidStateTransitionError(EntityType, s.String(), "finish processing")
	}
	return Finished, nil
}
