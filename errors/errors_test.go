package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrapf(ErrCorruptArtifact, "decode %s", "location_region.json")

	assert.True(t, Is(err, ErrCorruptArtifact))
	assert.False(t, Is(err, ErrUnsupportedFormat))
	assert.Contains(t, err.Error(), "location_region.json")
}

func TestSentinelConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		contains string
	}{
		{"not found", NewNotFoundError("folder %s", "/tmp/x"), ErrNotFound, "/tmp/x"},
		{"invalid request", NewInvalidRequestError("top_k %d out of range", 42), ErrInvalidRequest, "top_k 42"},
		{"corrupt artifact", NewCorruptArtifactError("idf has %d entries", 3), ErrCorruptArtifact, "idf has 3"},
		{"unsupported format", NewUnsupportedFormatError("kind %q", "svm"), ErrUnsupportedFormat, `kind "svm"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.True(t, Is(tt.err, tt.sentinel))
			assert.Contains(t, tt.err.Error(), tt.contains)
		})
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFoundError(Wrap(ErrNotFound, "document")))
	assert.True(t, IsInvalidRequestError(NewInvalidRequestError("bad doc type")))
	assert.True(t, IsServiceUnavailableError(WithHint(ErrServiceUnavailable, "load models")))

	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsInvalidRequestError(New("other")))
	assert.False(t, IsServiceUnavailableError(ErrInvalidRequest))
}

func TestMarkKeepsMessage(t *testing.T) {
	err := Mark(New("unexpected end of JSON input"), ErrCorruptArtifact)

	assert.True(t, Is(err, ErrCorruptArtifact))
	assert.Equal(t, "unexpected end of JSON input", err.Error())
}

func TestWithHint(t *testing.T) {
	err := WithHint(ErrServiceUnavailable, "place model bundles in models.dir")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "place model bundles in models.dir", hints[0])
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "errors_test.go")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.Nil(t, WithDetail(nil, "detail"))
}

func ExampleWrap() {
	err := Wrap(ErrNotFound, "documents folder")
	fmt.Println(err)
	// Output: documents folder: not found
}
