package bulk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectKind(t *testing.T) {
	assert.Equal(t, BodyList, DetectKind([]byte("  [1]")))
	assert.Equal(t, BodyObject, DetectKind([]byte("\n{\"a\":1}")))
	assert.Equal(t, BodyMalformed, DetectKind([]byte("\"just a string\"")))
	assert.Equal(t, BodyMalformed, DetectKind(nil))
}

func TestDecodeListNotAList(t *testing.T) {
	_, err := DecodeList([]byte(`{"name": "alice"}`))
	require.Error(t, err)

	fatal, ok := err.(*FatalError)
	require.True(t, ok)
	assert.Equal(t, KindNotAList, fatal.Kind)
	assert.Equal(t, `Expected a list of items but got type "dict".`, fatal.Detail[NonFieldKey][0].Message)
}

func TestDecodeListNonObjectElements(t *testing.T) {
	records, err := DecodeList([]byte(`[{"name": "a"}, "oops", 42]`))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.NotNil(t, records[0])
	// Non-object elements come back nil so they fail per-record.
	assert.Nil(t, records[1])
	assert.Nil(t, records[2])
}

func TestDecodeListMalformedJSON(t *testing.T) {
	_, err := DecodeList([]byte(`[{"name":`))
	require.Error(t, err)
	fatal, ok := err.(*FatalError)
	require.True(t, ok)
	assert.Equal(t, KindNotAList, fatal.Kind)
}
