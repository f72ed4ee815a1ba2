package v1

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sakura-notes/sakura/app/core"
	"github.com/sakura-notes/sakura/pkg/chunk"
	"github.com/sakura-notes/sakura/pkg/errors"
	"github.com/sakura-notes/sakura/pkg/i18n"
	"github.com/sakura-notes/sakura/pkg/types"
)

type QueryLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewQueryLogic(ctx context.Context, core *core.Core) *QueryLogic {
	return &QueryLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}
}

// NoteMatch is one retrieval hit mapped back into the note body. Start and
// End are character offsets; when resolution degraded they cover the whole
// body and must be treated as low confidence.
type NoteMatch struct {
	NoteID        string  `json:"note_id"`
	Title         string  `json:"title"`
	Fragment      string  `json:"fragment"`
	FragmentIndex int     `json:"fragment_index"`
	Score         float32 `json:"score"`
	Start         int     `json:"start"`
	End           int     `json:"end"`
}

// Query is the non-generative sibling of the ask pipeline: it returns the
// raw ranked fragments with their spans instead of a synthesized answer.
func (l *QueryLogic) Query(query string) ([]NoteMatch, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("QueryLogic.Query.EmptyQuery", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	answerLogic := &AnswerLogic{ctx: l.ctx, core: l.core, UserInfo: l.UserInfo}
	fragments, err := answerLogic.retrieve(query, types.DEFAULT_RETRIEVE_LIMIT, types.DEFAULT_RETRIEVE_THRESHOLD)
	if err != nil {
		return nil, err
	}

	matches := make([]NoteMatch, 0, len(fragments))
	for _, f := range fragments {
		note, err := l.core.Store().NoteStore().Get(l.ctx, f.UserID, f.NoteID)
		if err != nil {
			if err == sql.ErrNoRows {
				// fragment outlived its note, stale derived state
				slog.Warn("Retrieved fragment for missing note", slog.String("component", "QueryLogic.Query"), slog.String("note_id", f.NoteID))
				continue
			}
			return nil, errors.New("QueryLogic.Query.NoteStore.Get", i18n.ERROR_INTERNAL, err)
		}

		start, end := chunk.Locate(note.Title, note.Content, f.Content, f.ChunkIndex)
		matches = append(matches, NoteMatch{
			NoteID:        note.ID,
			Title:         note.Title,
			Fragment:      f.Content,
			FragmentIndex: f.ChunkIndex,
			Score:         f.Score,
			Start:         start,
			End:           end,
		})
	}

	return matches, nil
}
