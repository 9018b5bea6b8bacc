package bulk

import "fmt"

// ErrorKind classifies a fatal, whole-request failure.
type ErrorKind string

const (
	// KindNotAList: the request body is not a JSON array.
	KindNotAList ErrorKind = "not_a_list"
	// KindEmpty: the list is empty and empty lists are disallowed.
	KindEmpty ErrorKind = "empty"
	// KindValidation: strict-mode surface of the first invalid record.
	KindValidation ErrorKind = "invalid"
	// KindIdentity: an update record's lookup key is unusable, or the
	// batched lookup did not match every requested key.
	KindIdentity ErrorKind = "identity"
	// KindSelector: the ids query parameter failed its format check.
	KindSelector ErrorKind = "invalid_selector"
	// KindDestructiveScope: bulk destroy targeted the unfiltered set.
	KindDestructiveScope ErrorKind = "unfiltered_destroy"
)

// FatalError aborts the entire request before any mutation is applied.
// It is never folded into a multi-status response.
type FatalError struct {
	Kind   ErrorKind
	Detail ErrorDetail
}

func (e *FatalError) Error() string {
	for _, errs := range e.Detail {
		if len(errs) > 0 {
			return fmt.Sprintf("%s: %s", e.Kind, errs[0].Message)
		}
	}
	return string(e.Kind)
}

// Fatal builds a FatalError with a single non-field error message.
func Fatal(kind ErrorKind, message string) *FatalError {
	return &FatalError{
		Kind:   kind,
		Detail: Detail(NonFieldKey, message, string(kind)),
	}
}

// Error messages on the wire. Formats follow the single-record
// serializer's wording so bulk and non-bulk errors read the same.
const (
	MsgRequired     = "This field is required."
	MsgNotAListFmt  = "Expected a list of items but got type %q."
	MsgEmptyList    = "This list may not be empty."
	MsgNotADictFmt  = "Invalid data. Expected a dictionary, but got %s."
	MsgBadLookup    = "All records must carry a non-empty scalar lookup value."
	MsgNotAllFound  = "Could not find all objects to update."
	MsgInvalidIDs   = "Invalid ids"
	MsgUnfilteredDo = "Refusing to bulk-delete an unfiltered collection."
)

// Per-field error codes shared with the record validator.
const (
	CodeRequired = "required"
	CodeInvalid  = "invalid"
)
