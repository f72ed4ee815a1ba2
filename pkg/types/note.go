package types

import (
	sq "github.com/Masterminds/squirrel"
)

// Note is the user-owned unit of content. GroupID is assigned by the
// clustering recompute, empty means ungrouped.
type Note struct {
	ID        string `json:"id" db:"id"`
	UserID    string `json:"user_id" db:"user_id"`
	GroupID   string `json:"group_id" db:"group_id"`
	Title     string `json:"title" db:"title"`
	Content   string `json:"content" db:"content"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
	UpdatedAt int64  `json:"updated_at" db:"updated_at"`
}

// EmbeddingText is what gets split and embedded for retrieval. The title is
// indexed together with the body for better semantic recall, which is why
// retrieved fragments later need to be mapped back into body-only offsets.
func (n Note) EmbeddingText() string {
	if n.Title == "" {
		return n.Content
	}
	return n.Title + "\n" + n.Content
}

type UpdateNoteArgs struct {
	Title   string
	Content string
}

type GetNoteOptions struct {
	ID      string
	UserID  string
	GroupID string
}

func (opts GetNoteOptions) Apply(query *sq.SelectBuilder) {
	if opts.ID != "" {
		*query = query.Where(sq.Eq{"id": opts.ID})
	}
	if opts.UserID != "" {
		*query = query.Where(sq.Eq{"user_id": opts.UserID})
	}
	if opts.GroupID != "" {
		*query = query.Where(sq.Eq{"group_id": opts.GroupID})
	}
}
