package types

import (
	sq "github.com/Masterminds/squirrel"
)

// Group is a machine-derived topic bucket. The whole set for a user is thrown
// away and rebuilt every time that user's notes change materially.
type Group struct {
	ID        string `json:"id" db:"id"`
	UserID    string `json:"user_id" db:"user_id"`
	Summary   string `json:"summary" db:"summary"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
	UpdatedAt int64  `json:"updated_at" db:"updated_at"`
}

type GroupWithNotes struct {
	Group
	Notes []Note `json:"notes"`
}

type GetGroupOptions struct {
	ID     string
	UserID string
}

func (opts GetGroupOptions) Apply(query *sq.SelectBuilder) {
	if opts.ID != "" {
		*query = query.Where(sq.Eq{"id": opts.ID})
	}
	if opts.UserID != "" {
		*query = query.Where(sq.Eq{"user_id": opts.UserID})
	}
}
