package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Reference points a citation number at the fragment it quotes.
type Reference struct {
	NoteID        string `json:"note_id"`
	FragmentIndex int    `json:"fragment_index"`
	FragmentText  string `json:"fragment_text"`
}

// ReferenceMap maps citation numbers ("1".."N", dense and sequential in the
// final answer text) to their source fragments. Stored as JSONB.
type ReferenceMap map[string]Reference

func (m ReferenceMap) Value() (driver.Value, error) {
	if m == nil {
		m = ReferenceMap{}
	}
	return json.Marshal(m)
}

func (m *ReferenceMap) Scan(value interface{}) error {
	if value == nil {
		*m = ReferenceMap{}
		return nil
	}
	raw, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unsupported reference map type %T", value)
	}
	return json.Unmarshal(raw, m)
}

type Answer struct {
	ID         string       `json:"id" db:"id"`
	UserID     string       `json:"user_id" db:"user_id"`
	Question   string       `json:"question" db:"question"`
	Title      string       `json:"title" db:"title"`
	AnswerText string       `json:"answer_text" db:"answer_text"`
	References ReferenceMap `json:"references" db:"refs"`
	CreatedAt  int64        `json:"created_at" db:"created_at"`
	UpdatedAt  int64        `json:"updated_at" db:"updated_at"`
}

type GetAnswerOptions struct {
	ID     string
	UserID string
}

func (opts GetAnswerOptions) Apply(query *sq.SelectBuilder) {
	if opts.ID != "" {
		*query = query.Where(sq.Eq{"id": opts.ID})
	}
	if opts.UserID != "" {
		*query = query.Where(sq.Eq{"user_id": opts.UserID})
	}
}
