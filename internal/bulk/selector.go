package bulk

import (
	"regexp"
	"strconv"
)

// idSelectorPattern accepts a comma-separated list of decimal ids with
// no whitespace and no trailing comma.
var idSelectorPattern = regexp.MustCompile(`^\d+(,\d+)*$`)

// ParseIDSelector parses the `ids` query parameter into lookup values.
// Any deviation from the format is a KindSelector fatal, raised before
// any query executes.
func ParseIDSelector(raw string) ([]any, error) {
	if !idSelectorPattern.MatchString(raw) {
		return nil, Fatal(KindSelector, MsgInvalidIDs)
	}

	var ids []any
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == ',' {
			id, err := strconv.ParseInt(raw[start:i], 10, 64)
			if err != nil {
				return nil, Fatal(KindSelector, MsgInvalidIDs)
			}
			ids = append(ids, id)
			start = i + 1
		}
	}
	return ids, nil
}
