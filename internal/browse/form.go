package browse

import "strings"

// FormState is a snapshot of the download form's fields. Dates are
// "2006-01-02", the reference instant is "2006-01-02T15:04" local time
type FormState struct {
	StartDate        string
	EndDate          string
	ReferenceInstant string
	LimitClearImages bool
}

// Ready reports whether the estimate and download actions may fire:
// all three text fields non-empty after trimming. The clear-images
// checkbox never gates
func (f FormState) Ready() bool {
	return strings.TrimSpace(f.StartDate) != "" &&
		strings.TrimSpace(f.EndDate) != "" &&
		strings.TrimSpace(f.ReferenceInstant) != ""
}
