package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/sakura-notes/sakura/pkg/register"
	"github.com/sakura-notes/sakura/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.NoteStore = NewNoteStore(provider)
	})
}

type NoteStore struct {
	CommonFields
}

func NewNoteStore(provider SqlProviderAchieve) *NoteStore {
	repo := &NoteStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_NOTE)
	repo.SetAllColumns("id", "user_id", "group_id", "title", "content", "created_at", "updated_at")
	return repo
}

func (s *NoteStore) Create(ctx context.Context, data types.Note) error {
	query := sq.Insert(s.GetTable()).
		Columns("id", "user_id", "group_id", "title", "content", "created_at", "updated_at").
		Values(data.ID, data.UserID, data.GroupID, data.Title, data.Content, data.CreatedAt, data.UpdatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *NoteStore) BatchCreate(ctx context.Context, datas []types.Note) error {
	if len(datas) == 0 {
		return nil
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "user_id", "group_id", "title", "content", "created_at", "updated_at")

	for _, data := range datas {
		query = query.Values(data.ID, data.UserID, data.GroupID, data.Title, data.Content, data.CreatedAt, data.UpdatedAt)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// Get scopes by owner as well as id so a foreign note reads as missing.
func (s *NoteStore) Get(ctx context.Context, userID, id string) (*types.Note, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"user_id": userID, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Note
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *NoteStore) List(ctx context.Context, opts types.GetNoteOptions, page, pageSize uint64) ([]types.Note, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at DESC", "id DESC")
	if page != types.NO_PAGING || pageSize != types.NO_PAGING {
		offset := (page - 1) * pageSize
		query = query.Limit(pageSize).Offset(offset)
	}

	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Note
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *NoteStore) Total(ctx context.Context, opts types.GetNoteOptions) (int64, error) {
	query := sq.Select("COUNT(*)").From(s.GetTable())

	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	var res int64
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return 0, err
	}
	return res, nil
}

func (s *NoteStore) Update(ctx context.Context, userID, id string, data types.UpdateNoteArgs) error {
	query := sq.Update(s.GetTable()).
		Set("title", data.Title).
		Set("content", data.Content).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"user_id": userID, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *NoteStore) Delete(ctx context.Context, userID, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"user_id": userID, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *NoteStore) SetGroup(ctx context.Context, userID, id, groupID string) error {
	query := sq.Update(s.GetTable()).
		Set("group_id", groupID).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"user_id": userID, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// ResetGroups detaches every note of the user before groups are rebuilt.
func (s *NoteStore) ResetGroups(ctx context.Context, userID string) error {
	query := sq.Update(s.GetTable()).
		Set("group_id", "").
		Where(sq.Eq{"user_id": userID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
