package bulk

import (
	"encoding/json"
	"fmt"
)

// BodyKind is the structural kind of a parsed request body, decided once
// at the entry point before any validation runs.
type BodyKind int

const (
	// BodyList: a JSON array, the bulk path.
	BodyList BodyKind = iota
	// BodyObject: a JSON object, the single-record path.
	BodyObject
	// BodyMalformed: anything else, including unparseable input.
	BodyMalformed
)

// DetectKind inspects the first significant byte of the raw body.
func DetectKind(raw []byte) BodyKind {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return BodyList
		case '{':
			return BodyObject
		default:
			return BodyMalformed
		}
	}
	return BodyMalformed
}

// DecodeList parses a JSON array body into records. Elements that are
// not objects come back as nil entries so the orchestrator can fail them
// individually instead of aborting the whole request. A non-array body
// is a KindNotAList fatal.
func DecodeList(raw []byte) ([]map[string]any, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, Fatal(KindNotAList, fmt.Sprintf(MsgNotAListFmt, "invalid"))
	}

	items, ok := parsed.([]any)
	if !ok {
		return nil, Fatal(KindNotAList, fmt.Sprintf(MsgNotAListFmt, jsonTypeName(parsed)))
	}

	records := make([]map[string]any, len(items))
	for i, item := range items {
		if record, ok := item.(map[string]any); ok {
			records[i] = record
		}
	}
	return records, nil
}

// DecodeObject parses a JSON object body into a single record.
func DecodeObject(raw []byte) (map[string]any, error) {
	var record map[string]any
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, Fatal(KindValidation, fmt.Sprintf(MsgNotADictFmt, "malformed input"))
	}
	return record, nil
}

// jsonTypeName names a decoded JSON value the way clients see it.
func jsonTypeName(v any) string {
	switch v.(type) {
	case map[string]any:
		return "dict"
	case string:
		return "str"
	case float64:
		return "number"
	case bool:
		return "bool"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
