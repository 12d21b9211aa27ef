// Package dataset loads the group/subgroup/value tables behind each slide
// and folds them into the grouped series the chart draws.
package dataset

import (
	"fmt"
	"strings"
)

// DataPoint is one input row: Group is the category on the y axis,
// Subgroup the comparison key inside it and Value the measured hours.
type DataPoint struct {
	Group    string  `json:"group"`
	Subgroup string  `json:"subgroup"`
	Value    float64 `json:"value"`
}

// DataLoadError reports a dataset that could not be fetched or parsed, or
// that parsed to zero rows.
type DataLoadError struct {
	Ref string
	Err error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("loading dataset %q: %v", e.Ref, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// InconsistentDomainError reports a subgroup domain that differs from the
// one every group is expected to share. Group is empty when the mismatch is
// against the configured subgroup styles rather than another group.
type InconsistentDomainError struct {
	Group string
	Got   []string
	Want  []string
}

func (e *InconsistentDomainError) Error() string {
	if e.Group == "" {
		return fmt.Sprintf("subgroup domain [%s] does not match expected [%s]",
			strings.Join(e.Got, ", "), strings.Join(e.Want, ", "))
	}
	return fmt.Sprintf("group %q has subgroups [%s], expected [%s]",
		e.Group, strings.Join(e.Got, ", "), strings.Join(e.Want, ", "))
}
