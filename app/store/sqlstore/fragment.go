package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/pgvector/pgvector-go"

	"github.com/sakura-notes/sakura/pkg/register"
	"github.com/sakura-notes/sakura/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.FragmentStore = NewFragmentStore(provider)
	})
}

type FragmentStore struct {
	CommonFields
}

func NewFragmentStore(provider SqlProviderAchieve) *FragmentStore {
	repo := &FragmentStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_FRAGMENT)
	repo.SetAllColumns("id", "note_id", "user_id", "kind", "chunk_index", "content", "embedding", "created_at", "updated_at")
	return repo
}

func (s *FragmentStore) BatchCreate(ctx context.Context, datas []types.Fragment) error {
	if len(datas) == 0 {
		return nil
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "note_id", "user_id", "kind", "chunk_index", "content", "embedding", "created_at", "updated_at")

	for _, data := range datas {
		query = query.Values(data.ID, data.NoteID, data.UserID, data.Kind, data.ChunkIndex, data.Content, data.Embedding, data.CreatedAt, data.UpdatedAt)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *FragmentStore) List(ctx context.Context, opts types.GetFragmentOptions, page, pageSize uint64) ([]types.Fragment, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("note_id", "chunk_index")
	if page != types.NO_PAGING || pageSize != types.NO_PAGING {
		offset := (page - 1) * pageSize
		query = query.Limit(pageSize).Offset(offset)
	}

	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Fragment
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// Query runs a cosine similarity search, keeping only hits at or above
// threshold, ordered best first.
func (s *FragmentStore) Query(ctx context.Context, opts types.GetFragmentOptions, vector pgvector.Vector, threshold float32, limit uint64) ([]types.RetrievedFragment, error) {
	// pgvector distance operators:
	// <-> - L2 distance
	// <#> - (negative) inner product
	// <=> - cosine distance
	cosColumn, vectorArgs, _ := sq.Expr("1 - (embedding <=> ?) as cos", vector).ToSql()
	query := sq.Select("note_id", "user_id", "chunk_index", "content", cosColumn).
		From(s.GetTable()).
		Where(sq.Expr("1 - (embedding <=> ?) >= ?", vector, threshold)).
		OrderBy("cos DESC").
		Limit(limit)

	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	args = append(vectorArgs, args...)

	var res []types.RetrievedFragment
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteByNote purges a note's fragments ahead of a resync.
func (s *FragmentStore) DeleteByNote(ctx context.Context, userID, noteID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"user_id": userID, "note_id": noteID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
