package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/sakura-notes/sakura/pkg/register"
	"github.com/sakura-notes/sakura/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.AnswerStore = NewAnswerStore(provider)
	})
}

type AnswerStore struct {
	CommonFields
}

func NewAnswerStore(provider SqlProviderAchieve) *AnswerStore {
	repo := &AnswerStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_ANSWER)
	repo.SetAllColumns("id", "user_id", "question", "title", "answer_text", "refs", "created_at", "updated_at")
	return repo
}

func (s *AnswerStore) Create(ctx context.Context, data types.Answer) error {
	query := sq.Insert(s.GetTable()).
		Columns("id", "user_id", "question", "title", "answer_text", "refs", "created_at", "updated_at").
		Values(data.ID, data.UserID, data.Question, data.Title, data.AnswerText, data.References, data.CreatedAt, data.UpdatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *AnswerStore) Get(ctx context.Context, userID, id string) (*types.Answer, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"user_id": userID, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Answer
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *AnswerStore) List(ctx context.Context, opts types.GetAnswerOptions, page, pageSize uint64) ([]types.Answer, error) {
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

	var res []types.Answer
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *AnswerStore) Total(ctx context.Context, opts types.GetAnswerOptions) (int64, error) {
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

func (s *AnswerStore) Delete(ctx context.Context, userID, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"user_id": userID, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
