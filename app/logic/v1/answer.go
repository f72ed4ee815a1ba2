package v1

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/samber/lo"

	"github.com/sakura-notes/sakura/app/core"
	"github.com/sakura-notes/sakura/pkg/ai"
	"github.com/sakura-notes/sakura/pkg/citation"
	"github.com/sakura-notes/sakura/pkg/errors"
	"github.com/sakura-notes/sakura/pkg/i18n"
	"github.com/sakura-notes/sakura/pkg/types"
	"github.com/sakura-notes/sakura/pkg/utils"
)

type AnswerLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewAnswerLogic(ctx context.Context, core *core.Core) *AnswerLogic {
	return &AnswerLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}
}

const (
	emptyAnswerTitle = "No answer"
	emptyAnswerText  = "No relevant notes were found that could answer this question."

	emptyAnswerTitleCN = "暂无答案"
	emptyAnswerTextCN  = "没有找到能回答这个问题的相关笔记。"
)

// newEmptyAnswer is the short-circuit result when nothing scores above the
// retrieval threshold. It is a normal, persisted answer, not an error.
func newEmptyAnswer(ctx context.Context, userID, question string) types.Answer {
	now := time.Now().Unix()
	return types.Answer{
		ID:         utils.GenUniqIDStr(),
		UserID:     userID,
		Question:   question,
		Title:      GetContentByClientLanguage(ctx, emptyAnswerTitle, emptyAnswerTitleCN),
		AnswerText: GetContentByClientLanguage(ctx, emptyAnswerText, emptyAnswerTextCN),
		References: types.ReferenceMap{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// buildProvisionalReferences keys each retrieved fragment by its 1-based
// retrieval rank. These numbers are only an intermediate handle; the final
// dense numbering is assigned after generation.
func buildProvisionalReferences(fragments []types.RetrievedFragment) types.ReferenceMap {
	refs := make(types.ReferenceMap, len(fragments))
	for i, f := range fragments {
		refs[strconv.Itoa(i+1)] = types.Reference{
			NoteID:        f.NoteID,
			FragmentIndex: f.ChunkIndex,
			FragmentText:  f.Content,
		}
	}
	return refs
}

// GenerateAnswer runs the full ask pipeline: retrieve, generate, renumber
// citations, persist. Zero limit or threshold fall back to the defaults.
func (l *AnswerLogic) GenerateAnswer(query string, limit uint64, threshold float32) (*types.Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("AnswerLogic.GenerateAnswer.EmptyQuery", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if limit == 0 {
		limit = types.DEFAULT_RETRIEVE_LIMIT
	}
	if threshold == 0 {
		threshold = types.DEFAULT_RETRIEVE_THRESHOLD
	}

	userID := l.GetUserInfo().User

	fragments, err := l.retrieve(query, limit, threshold)
	if err != nil {
		return nil, err
	}

	if len(fragments) == 0 {
		answer := newEmptyAnswer(l.ctx, userID, query)
		if err = l.core.Store().AnswerStore().Create(l.ctx, answer); err != nil {
			return nil, errors.New("AnswerLogic.GenerateAnswer.AnswerStore.Create", i18n.ERROR_INTERNAL, err)
		}
		return &answer, nil
	}

	provisional := buildProvisionalReferences(fragments)
	contextBlock := ai.BuildAnswerContext(lo.Map(fragments, func(item types.RetrievedFragment, _ int) string {
		return item.Content
	}))

	lang := utils.WhatLang(query)
	prompt := ai.BuildAnswerPrompt(query, contextBlock, lang)

	timer := l.core.Metrics().LLMRequestTimer("answer")
	generated, err := l.core.Srv().AI().Generate(l.ctx, prompt, query)
	timer.ObserveDuration()
	if err != nil {
		l.core.Metrics().LLMErrorInc("answer")
		return nil, errors.New("AnswerLogic.GenerateAnswer.Generate", i18n.ERROR_INTERNAL, err)
	}

	title := generated.Title
	if generated.Fallback || title == "" {
		title = ai.FallbackTitle(query)
	}

	answerText, refs := citation.Renumber(generated.Answer, provisional)

	now := time.Now().Unix()
	answer := types.Answer{
		ID:         utils.GenUniqIDStr(),
		UserID:     userID,
		Question:   query,
		Title:      title,
		AnswerText: answerText,
		References: refs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err = l.core.Store().AnswerStore().Create(l.ctx, answer); err != nil {
		return nil, errors.New("AnswerLogic.GenerateAnswer.AnswerStore.Create", i18n.ERROR_INTERNAL, err)
	}

	return &answer, nil
}

func (l *AnswerLogic) retrieve(query string, limit uint64, threshold float32) ([]types.RetrievedFragment, error) {
	timer := l.core.Metrics().EmbeddingTimer("query")
	res, err := l.core.Srv().AI().EmbeddingForQuery(l.ctx, []string{query})
	timer.ObserveDuration()
	if err != nil {
		return nil, errors.New("AnswerLogic.retrieve.EmbeddingForQuery", i18n.ERROR_INTERNAL, err)
	}
	if len(res.Data) == 0 {
		return nil, errors.New("AnswerLogic.retrieve.EmptyEmbedding", i18n.ERROR_INTERNAL, nil)
	}

	fragments, err := l.core.Store().FragmentStore().Query(l.ctx, types.GetFragmentOptions{
		UserID: l.GetUserInfo().User,
		Kind:   types.FRAGMENT_KIND_CHUNK,
	}, pgvector.NewVector(res.Data[0]), threshold, limit)
	if err != nil {
		return nil, errors.New("AnswerLogic.retrieve.FragmentStore.Query", i18n.ERROR_INTERNAL, err)
	}

	return fragments, nil
}

func (l *AnswerLogic) GetAnswer(id string) (*types.Answer, error) {
	answer, err := l.core.Store().AnswerStore().Get(l.ctx, l.GetUserInfo().User, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("AnswerLogic.GetAnswer.AnswerStore.Get", i18n.ERROR_NOT_FOUND, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("AnswerLogic.GetAnswer.AnswerStore.Get", i18n.ERROR_INTERNAL, err)
	}
	return answer, nil
}

func (l *AnswerLogic) ListAnswers(page, pageSize uint64) ([]types.Answer, int64, error) {
	opts := types.GetAnswerOptions{
		UserID: l.GetUserInfo().User,
	}

	answers, err := l.core.Store().AnswerStore().List(l.ctx, opts, page, pageSize)
	if err != nil {
		return nil, 0, errors.New("AnswerLogic.ListAnswers.AnswerStore.List", i18n.ERROR_INTERNAL, err)
	}

	total, err := l.core.Store().AnswerStore().Total(l.ctx, opts)
	if err != nil {
		return nil, 0, errors.New("AnswerLogic.ListAnswers.AnswerStore.Total", i18n.ERROR_INTERNAL, err)
	}

	return answers, total, nil
}

func (l *AnswerLogic) DeleteAnswer(id string) error {
	if _, err := l.GetAnswer(id); err != nil {
		return err
	}

	if err := l.core.Store().AnswerStore().Delete(l.ctx, l.GetUserInfo().User, id); err != nil {
		return errors.New("AnswerLogic.DeleteAnswer.AnswerStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

// ConvertToNote turns an answer into a regular note and consumes the
// answer. The new note then goes through the usual fragment and group sync.
func (l *AnswerLogic) ConvertToNote(id string) (string, error) {
	answer, err := l.GetAnswer(id)
	if err != nil {
		return "", err
	}

	now := time.Now().Unix()
	note := types.Note{
		ID:        utils.GenUniqIDStr(),
		UserID:    answer.UserID,
		Title:     answer.Title,
		Content:   answer.AnswerText,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().NoteStore().Create(ctx, note); err != nil {
			return errors.New("AnswerLogic.ConvertToNote.NoteStore.Create", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().AnswerStore().Delete(ctx, answer.UserID, answer.ID); err != nil {
			return errors.New("AnswerLogic.ConvertToNote.AnswerStore.Delete", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	noteLogic := NewNoteLogic(l.ctx, l.core)
	noteLogic.syncDerivedState(note)

	slog.Info("Converted answer to note", slog.String("answer_id", answer.ID), slog.String("note_id", note.ID))

	return note.ID, nil
}
