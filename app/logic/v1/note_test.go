package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitNotePayloads(t *testing.T) {
	payloads := []NoteCreatePayload{
		{Title: "first", Content: "body one"},
		{Title: "broken", Content: "   "},
		{Title: "second", Content: "body two"},
		{Title: "also broken", Content: ""},
		{Title: "third", Content: "body three"},
	}

	notes, failures := splitNotePayloads("u1", payloads)

	assert.Len(t, notes, 3)
	assert.Len(t, failures, 2)

	assert.Equal(t, 1, failures[0].Index)
	assert.Equal(t, "broken", failures[0].Title)
	assert.Equal(t, 3, failures[1].Index)
	assert.Equal(t, "also broken", failures[1].Title)

	for _, n := range notes {
		assert.Equal(t, "u1", n.UserID)
		assert.NotEmpty(t, n.ID)
	}
	assert.Equal(t, "first", notes[0].Title)
	assert.Equal(t, "second", notes[1].Title)
	assert.Equal(t, "third", notes[2].Title)
}

func TestSplitNotePayloadsAllValid(t *testing.T) {
	notes, failures := splitNotePayloads("u1", []NoteCreatePayload{
		{Title: "a", Content: "x"},
		{Title: "b", Content: "y"},
	})

	assert.Len(t, notes, 2)
	assert.Empty(t, failures)
}
