package store

import (
	"context"

	"github.com/pgvector/pgvector-go"

	"github.com/sakura-notes/sakura/pkg/types"
)

type UserStore interface {
	Create(ctx context.Context, data types.User) error
	GetUser(ctx context.Context, id string) (*types.User, error)
	GetByName(ctx context.Context, name string) (*types.User, error)
	UpdateUserProfile(ctx context.Context, id, userName, avatar string) error
}

type NoteStore interface {
	Create(ctx context.Context, data types.Note) error
	BatchCreate(ctx context.Context, datas []types.Note) error
	Get(ctx context.Context, userID, id string) (*types.Note, error)
	List(ctx context.Context, opts types.GetNoteOptions, page, pageSize uint64) ([]types.Note, error)
	Total(ctx context.Context, opts types.GetNoteOptions) (int64, error)
	Update(ctx context.Context, userID, id string, data types.UpdateNoteArgs) error
	Delete(ctx context.Context, userID, id string) error
	SetGroup(ctx context.Context, userID, id, groupID string) error
	ResetGroups(ctx context.Context, userID string) error
}

type GroupStore interface {
	Create(ctx context.Context, data types.Group) error
	Get(ctx context.Context, userID, id string) (*types.Group, error)
	List(ctx context.Context, opts types.GetGroupOptions) ([]types.Group, error)
	DeleteAll(ctx context.Context, userID string) error
}

type AnswerStore interface {
	Create(ctx context.Context, data types.Answer) error
	Get(ctx context.Context, userID, id string) (*types.Answer, error)
	List(ctx context.Context, opts types.GetAnswerOptions, page, pageSize uint64) ([]types.Answer, error)
	Total(ctx context.Context, opts types.GetAnswerOptions) (int64, error)
	Delete(ctx context.Context, userID, id string) error
}

type FragmentStore interface {
	BatchCreate(ctx context.Context, datas []types.Fragment) error
	List(ctx context.Context, opts types.GetFragmentOptions, page, pageSize uint64) ([]types.Fragment, error)
	Query(ctx context.Context, opts types.GetFragmentOptions, vector pgvector.Vector, threshold float32, limit uint64) ([]types.RetrievedFragment, error)
	DeleteByNote(ctx context.Context, userID, noteID string) error
}
