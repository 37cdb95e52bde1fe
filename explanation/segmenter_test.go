package explanation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPunktSegmenter(t *testing.T) {
	seg, err := NewPunktSegmenter()
	require.NoError(t, err)

	text := "I live in Boston. I love the harbor."
	sentences := seg.Segment(text)

	assert.Equal(t, []string{"I live in Boston.", "I love the harbor."}, sentences)
}

func TestPunktSegmenterParagraphs(t *testing.T) {
	seg, err := NewPunktSegmenter()
	require.NoError(t, err)

	text := "Subject: Weekend plans\n\n  Let's take BART downtown.\n\n\n"
	sentences := seg.Segment(text)

	assert.Equal(t, []string{"Subject: Weekend plans", "Let's take BART downtown."}, sentences)
	for _, s := range sentences {
		assert.True(t, strings.Contains(text, s))
	}
}

func TestPunktSegmenterDeterministic(t *testing.T) {
	seg, err := NewPunktSegmenter()
	require.NoError(t, err)

	text := "Classes start Monday. The lab is in building 4. Bring a notebook!"
	assert.Equal(t, seg.Segment(text), seg.Segment(text))
	assert.Empty(t, seg.Segment("   \n\n  "))
}

func TestPunktSegmenterNumberTerminatedSentence(t *testing.T) {
	seg, err := NewPunktSegmenter()
	require.NoError(t, err)

	text := "Dr. Smith moved to Boston in 2020.  He works at MIT!"
	assert.Equal(t, []string{"Dr. Smith moved to Boston in 2020.", "He works at MIT!"}, seg.Segment(text))
}

func TestSplitAfterNumbers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"year then capital", "Moved in 2020. He stayed.", []string{"Moved in 2020. ", "He stayed."}},
		{"lowercase continuation", "Chapter 2. then more", []string{"Chapter 2. then more"}},
		{"decimal", "GPA was 3.5 overall.", []string{"GPA was 3.5 overall."}},
		{"no digits", "Plain text. Here.", []string{"Plain text. Here."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitAfterNumbers(tt.text))
		})
	}
}
