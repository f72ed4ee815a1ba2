package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/sakura-notes/sakura/pkg/register"
	"github.com/sakura-notes/sakura/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.GroupStore = NewGroupStore(provider)
	})
}

type GroupStore struct {
	CommonFields
}

func NewGroupStore(provider SqlProviderAchieve) *GroupStore {
	repo := &GroupStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_GROUP)
	repo.SetAllColumns("id", "user_id", "summary", "created_at", "updated_at")
	return repo
}

func (s *GroupStore) Create(ctx context.Context, data types.Group) error {
	query := sq.Insert(s.GetTable()).
		Columns("id", "user_id", "summary", "created_at", "updated_at").
		Values(data.ID, data.UserID, data.Summary, data.CreatedAt, data.UpdatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *GroupStore) Get(ctx context.Context, userID, id string) (*types.Group, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"user_id": userID, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Group
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *GroupStore) List(ctx context.Context, opts types.GetGroupOptions) ([]types.Group, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at DESC", "id DESC")

	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Group
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteAll clears the user's whole group set ahead of a recompute.
func (s *GroupStore) DeleteAll(ctx context.Context, userID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"user_id": userID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
