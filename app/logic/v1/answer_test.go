package v1

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakura-notes/sakura/pkg/citation"
	"github.com/sakura-notes/sakura/pkg/types"
	"github.com/sakura-notes/sakura/pkg/utils"
)

func init() {
	utils.SetupIDWorker(1)
}

func TestBuildProvisionalReferences(t *testing.T) {
	fragments := []types.RetrievedFragment{
		{NoteID: "n1", ChunkIndex: 0, Content: "alpha", Score: 0.9},
		{NoteID: "n2", ChunkIndex: 3, Content: "beta", Score: 0.8},
		{NoteID: "n1", ChunkIndex: 1, Content: "gamma", Score: 0.5},
	}

	refs := buildProvisionalReferences(fragments)

	assert.Len(t, refs, 3)
	assert.Equal(t, types.Reference{NoteID: "n1", FragmentIndex: 0, FragmentText: "alpha"}, refs["1"])
	assert.Equal(t, types.Reference{NoteID: "n2", FragmentIndex: 3, FragmentText: "beta"}, refs["2"])
	assert.Equal(t, types.Reference{NoteID: "n1", FragmentIndex: 1, FragmentText: "gamma"}, refs["3"])
}

func TestNewEmptyAnswer(t *testing.T) {
	answer := newEmptyAnswer(context.Background(), "u1", "anything relevant?")

	assert.NotEmpty(t, answer.ID)
	assert.Equal(t, "u1", answer.UserID)
	assert.Equal(t, "anything relevant?", answer.Question)
	assert.Equal(t, emptyAnswerTitle, answer.Title)
	assert.Equal(t, emptyAnswerText, answer.AnswerText)
	assert.Empty(t, answer.References)
	assert.NotNil(t, answer.References)
}

func TestNewEmptyAnswerClientLanguage(t *testing.T) {
	ctx := context.WithValue(context.Background(), LANGUAGE_CONTEXT_KEY, types.LANGUAGE_CN_KEY)
	answer := newEmptyAnswer(ctx, "u1", "有相关内容吗?")

	assert.Equal(t, emptyAnswerTitleCN, answer.Title)
	assert.Equal(t, emptyAnswerTextCN, answer.AnswerText)
}

// end-to-end over the pure part of the pipeline: provisional references
// from retrieval rank, then renumbering against a generated text.
func TestAnswerReferencePipeline(t *testing.T) {
	fragments := []types.RetrievedFragment{
		{NoteID: "n-proto", ChunkIndex: 0, Content: "X is a protocol", Score: 0.9},
		{NoteID: "n-hist", ChunkIndex: 2, Content: "history of X", Score: 0.7},
		{NoteID: "n-misc", ChunkIndex: 1, Content: "unrelated detail", Score: 0.5},
	}

	provisional := buildProvisionalReferences(fragments)
	generated := "X is a protocol [3], first specified long ago [1]. See also [1]."

	text, refs := citation.Renumber(generated, provisional)

	assert.Equal(t, "X is a protocol [2], first specified long ago [1]. See also [1].", text)
	assert.Len(t, refs, 2)
	assert.Equal(t, "n-proto", refs["1"].NoteID)
	assert.Equal(t, "n-misc", refs["2"].NoteID)
}
