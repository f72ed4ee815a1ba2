package sqlstore

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sakura-notes/sakura/pkg/types"
	"github.com/sakura-notes/sakura/pkg/utils"
)

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("SAKURA_API_POSTGRESQL_DSN")
}

func (m PGConfig) FormatDSN() string {
	return m.DSN
}

func setupTestProvider(t *testing.T) *Provider {
	cfg := PGConfig{}
	cfg.FromENV()
	if cfg.DSN == "" {
		t.Skip("SAKURA_API_POSTGRESQL_DSN not set")
	}

	utils.SetupIDWorker(1)

	p := MustSetup(cfg)()
	if err := p.Install(); err != nil {
		t.Fatal(err)
	}
	return p
}

// every read and write is scoped by owner, a foreign user's id must behave
// exactly like a missing row.
func TestOwnerScoping(t *testing.T) {
	p := setupTestProvider(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
	defer cancel()

	now := time.Now().Unix()
	owner := utils.GenUniqIDStr()
	stranger := utils.GenUniqIDStr()

	note := types.Note{
		ID:        utils.GenUniqIDStr(),
		UserID:    owner,
		Title:     "private note",
		Content:   "only the owner may read this",
		CreatedAt: now,
		UpdatedAt: now,
	}
	assert.NoError(t, p.NoteStore().Create(ctx, note))

	got, err := p.NoteStore().Get(ctx, owner, note.ID)
	assert.NoError(t, err)
	assert.Equal(t, note.Content, got.Content)

	_, err = p.NoteStore().Get(ctx, stranger, note.ID)
	assert.Equal(t, sql.ErrNoRows, err)

	answer := types.Answer{
		ID:         utils.GenUniqIDStr(),
		UserID:     owner,
		Question:   "who can read this?",
		Title:      "ownership",
		AnswerText: "only you [1]",
		References: types.ReferenceMap{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	assert.NoError(t, p.AnswerStore().Create(ctx, answer))

	_, err = p.AnswerStore().Get(ctx, stranger, answer.ID)
	assert.Equal(t, sql.ErrNoRows, err)

	group := types.Group{
		ID:        utils.GenUniqIDStr(),
		UserID:    owner,
		Summary:   "private topic",
		CreatedAt: now,
		UpdatedAt: now,
	}
	assert.NoError(t, p.GroupStore().Create(ctx, group))

	_, err = p.GroupStore().Get(ctx, stranger, group.ID)
	assert.Equal(t, sql.ErrNoRows, err)

	strangerNotes, err := p.NoteStore().List(ctx, types.GetNoteOptions{UserID: stranger}, types.NO_PAGING, types.NO_PAGING)
	assert.NoError(t, err)
	assert.Empty(t, strangerNotes)

	assert.NoError(t, p.NoteStore().Delete(ctx, owner, note.ID))
	assert.NoError(t, p.AnswerStore().Delete(ctx, owner, answer.ID))
	assert.NoError(t, p.GroupStore().DeleteAll(ctx, owner))
}

// deleting with a foreign user id must not touch the owner's row.
func TestDeleteScopedByOwner(t *testing.T) {
	p := setupTestProvider(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
	defer cancel()

	now := time.Now().Unix()
	owner := utils.GenUniqIDStr()
	stranger := utils.GenUniqIDStr()

	note := types.Note{
		ID:        utils.GenUniqIDStr(),
		UserID:    owner,
		Content:   "still here",
		CreatedAt: now,
		UpdatedAt: now,
	}
	assert.NoError(t, p.NoteStore().Create(ctx, note))

	assert.NoError(t, p.NoteStore().Delete(ctx, stranger, note.ID))

	got, err := p.NoteStore().Get(ctx, owner, note.ID)
	assert.NoError(t, err)
	assert.Equal(t, note.ID, got.ID)

	assert.NoError(t, p.NoteStore().Delete(ctx, owner, note.ID))
}
