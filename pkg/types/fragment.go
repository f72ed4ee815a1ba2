package types

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/pgvector/pgvector-go"
)

type FragmentKind string

const (
	// FRAGMENT_KIND_FULL holds one embedding covering the whole note, kept
	// alongside the chunks so the note can be matched as a single unit.
	FRAGMENT_KIND_FULL FragmentKind = "full"
	// FRAGMENT_KIND_CHUNK holds one overlapping window of the note, used by retrieval.
	FRAGMENT_KIND_CHUNK FragmentKind = "chunk"
)

// Fragment is a derived record, regenerated in full whenever the source note
// changes. ChunkIndex is the zero-based window position within the note.
type Fragment struct {
	ID         string          `json:"id" db:"id"`
	NoteID     string          `json:"note_id" db:"note_id"`
	UserID     string          `json:"user_id" db:"user_id"`
	Kind       FragmentKind    `json:"kind" db:"kind"`
	ChunkIndex int             `json:"chunk_index" db:"chunk_index"`
	Content    string          `json:"content" db:"content"`
	Embedding  pgvector.Vector `json:"embedding" db:"embedding"`
	CreatedAt  int64           `json:"created_at" db:"created_at"`
	UpdatedAt  int64           `json:"updated_at" db:"updated_at"`
}

// RetrievedFragment is a similarity-search hit, ordered by descending Score.
type RetrievedFragment struct {
	NoteID     string  `json:"note_id" db:"note_id"`
	UserID     string  `json:"user_id" db:"user_id"`
	ChunkIndex int     `json:"chunk_index" db:"chunk_index"`
	Content    string  `json:"content" db:"content"`
	Score      float32 `json:"score" db:"cos"`
}

type GetFragmentOptions struct {
	NoteID string
	UserID string
	Kind   FragmentKind
}

func (opts GetFragmentOptions) Apply(query *sq.SelectBuilder) {
	if opts.NoteID != "" {
		*query = query.Where(sq.Eq{"note_id": opts.NoteID})
	}
	if opts.UserID != "" {
		*query = query.Where(sq.Eq{"user_id": opts.UserID})
	}
	if opts.Kind != "" {
		*query = query.Where(sq.Eq{"kind": opts.Kind})
	}
}
