package shipment

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// InspectionResult records the outcome an inspector assigned to a shipment.
type InspectionResult int

const (
	// InspectionResultUnknown represents an absent or undefined result.
	InspectionResultUnknown InspectionResult = iota

	// InspectionPass indicates the goods passed inspection.
	InspectionPass

	// InspectionFail indicates the goods failed inspection.
	InspectionFail

	// InspectionHold indicates the inspector put the shipment on hold
	// pending corrective action by the supplier.
	InspectionHold
)

func getInspectionResultStrings() map[InspectionResult]string {
	return map[InspectionResult]string{
		InspectionResultUnknown: "unknown",
		InspectionPass:          "pass",
		InspectionFail:          "fail",
		InspectionHold:          "hold",
	}
}

// InspectionResultFromString parses the wire representation of an inspection result.
func InspectionResultFromString(s string) (InspectionResult, error) {
	switch s {
	case "pass":
		return InspectionPass, nil
	case "fail":
		return InspectionFail, nil
	case "hold":
		return InspectionHold, nil
	default:
		return InspectionResultUnknown, errs.NewValueIsInvalidErrorWithCause(
			"inspectionResult is invalid",
			fmt.Errorf("%q is not a known inspection result", s),
		)
	}
}

// String returns the lowercase name of the result, or "unknown".
func (r InspectionResult) String() string {
	if s, ok := getInspectionResultStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// Validate checks that the result is one of pass, fail, or hold.
func (r InspectionResult) Validate() error {
	switch r {
	case InspectionPass, InspectionFail, InspectionHold:
		return nil
	case InspectionResultUnknown:
		fallthrough
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"inspectionResult is invalid",
			fmt.Errorf("%d is not a valid inspection result", r),
		)
	}
}
