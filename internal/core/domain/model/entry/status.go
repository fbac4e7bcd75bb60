package entry

import (
	"fmt"
	"strings"
	"time"

	"warehouse/internal/pkg/errs"
)

// Status is derived from an entry's processing timestamps; it is not stored.
//
//	Waiting ──> Processing ──> Finished
type Status int

const (
	Unknown Status = iota
	Waiting
	Processing
	Finished
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Waiting:    "Waiting",
		Processing: "Processing",
		Finished:   "Finished",
	}
}

func (s Status) Validate() error {
	if s < Waiting || s > Finished {
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

func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(str, s) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// DeriveStatus maps processing timestamps to a status.
func DeriveStatus(startedProcessing, finishedProcessing *time.Time) Status {
	switch {
	case finishedProcessing != nil:
		return Finished
	case startedProcessing != nil:
		return Processing
	default:
		return Waiting
	}
}

// StartProcessing is allowed only from Waiting; starting twice is rejected.
func (s Status) StartProcessing() (Status, error) {
	if s != Waiting {
		return 0, errs.NewInvalidStateTransitionError(EntityType, s.String(), "start processing")
	}
	return Processing, nil
}

// FinishProcessing is allowed only from Processing.
func (s Status) FinishProcessing() (Status, error) {
	if s != Processing {
		return 0, errs.NewInvalidStateTransitionError(EntityType, s.String(), "finish processing")
	}
	return Finished, nil
}

// StatusFilter matches entries against a set of statuses. An empty filter matches everything.
type StatusFilter []Status

func (f StatusFilter) Matches(s Status) bool {
	if len(f) == 0 {
		return true
	}
	for _, want := range f {
		if want == s {
			return true
		}
	}
	return false
}
