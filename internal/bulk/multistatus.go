package bulk

// RecordStatus is one element of a multi-status payload, reporting the
// fate of the input record at the same position.
type RecordStatus struct {
	Successful bool           `json:"successful"`
	Resource   map[string]any `json:"resource,omitempty"`
	Errors     ErrorDetail    `json:"errors,omitempty"`
}

// BuildMultiStatus zips the OutcomeSet with the representations of the
// persisted records. Representations only exist for valid positions, so
// they are consumed in order while failed positions are skipped; this is
// how "row k of the input succeeded" is reconstructed.
func BuildMultiStatus(outcomes OutcomeSet, resources []map[string]any) []RecordStatus {
	statuses := make([]RecordStatus, 0, len(outcomes))
	next := 0
	for _, outcome := range outcomes {
		if outcome.Valid() {
			var resource map[string]any
			if next < len(resources) {
				resource = resources[next]
				next++
			}
			statuses = append(statuses, RecordStatus{Successful: true, Resource: resource})
		} else {
			statuses = append(statuses, RecordStatus{Successful: false, Errors: outcome.Errors})
		}
	}
	return statuses
}

// shapeOnly reports whether every outcome failed and every failure is a
// non-field shape error. Such a set means the payload as a whole was
// unusable, which must escalate to a fatal instead of multi-status.
func shapeOnly(outcomes OutcomeSet) bool {
	if len(outcomes) == 0 || outcomes.InvalidCount() != len(outcomes) {
		return false
	}
	for _, outcome := range outcomes {
		for field := range outcome.Errors {
			if field != NonFieldKey {
				return false
			}
		}
	}
	return true
}
