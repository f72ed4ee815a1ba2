package v1

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/samber/lo"

	"github.com/sakura-notes/sakura/app/core"
	"github.com/sakura-notes/sakura/pkg/chunk"
	"github.com/sakura-notes/sakura/pkg/cluster"
	"github.com/sakura-notes/sakura/pkg/errors"
	"github.com/sakura-notes/sakura/pkg/i18n"
	"github.com/sakura-notes/sakura/pkg/safe"
	"github.com/sakura-notes/sakura/pkg/types"
	"github.com/sakura-notes/sakura/pkg/utils"
)

type NoteLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewNoteLogic(ctx context.Context, core *core.Core) *NoteLogic {
	return &NoteLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}
}

func (l *NoteLogic) CreateNote(title, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", errors.New("NoteLogic.CreateNote.EmptyContent", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	now := time.Now().Unix()
	note := types.Note{
		ID:        utils.GenUniqIDStr(),
		UserID:    l.GetUserInfo().User,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := l.core.Store().NoteStore().Create(l.ctx, note); err != nil {
		return "", errors.New("NoteLogic.CreateNote.NoteStore.Create", i18n.ERROR_INTERNAL, err)
	}

	l.syncDerivedState(note)

	return note.ID, nil
}

type NoteCreatePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type BatchCreateFailure struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Error string `json:"error"`
}

type BatchCreateResult struct {
	CreatedIDs []string             `json:"created_ids"`
	Failures   []BatchCreateFailure `json:"failures"`
}

// splitNotePayloads validates each payload in place, keeping the original
// index so failures can be reported against the caller's input order.
func splitNotePayloads(userID string, payloads []NoteCreatePayload) ([]types.Note, []BatchCreateFailure) {
	var (
		notes    []types.Note
		failures []BatchCreateFailure
	)

	now := time.Now().Unix()
	for i, p := range payloads {
		if strings.TrimSpace(p.Content) == "" {
			failures = append(failures, BatchCreateFailure{
				Index: i,
				Title: p.Title,
				Error: "content is empty",
			})
			continue
		}
		notes = append(notes, types.Note{
			ID:        utils.GenUniqIDStr(),
			UserID:    userID,
			Title:     p.Title,
			Content:   p.Content,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return notes, failures
}

// BatchCreateNotes inserts the valid payloads, writes their fragments as a
// single batched upsert and recomputes groups once, not per note.
func (l *NoteLogic) BatchCreateNotes(payloads []NoteCreatePayload) (BatchCreateResult, error) {
	if len(payloads) == 0 {
		return BatchCreateResult{}, errors.New("NoteLogic.BatchCreateNotes.EmptyPayload", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	notes, failures := splitNotePayloads(l.GetUserInfo().User, payloads)
	result := BatchCreateResult{
		CreatedIDs: lo.Map(notes, func(item types.Note, _ int) string { return item.ID }),
		Failures:   failures,
	}

	if len(notes) == 0 {
		return result, nil
	}

	if err := l.core.Store().NoteStore().BatchCreate(l.ctx, notes); err != nil {
		return BatchCreateResult{}, errors.New("NoteLogic.BatchCreateNotes.NoteStore.BatchCreate", i18n.ERROR_INTERNAL, err)
	}

	safe.Run(func() {
		if err := l.batchSyncFragments(notes); err != nil {
			slog.Error("Failed to sync note fragments", slog.String("component", "NoteLogic.BatchCreateNotes"), slog.Any("error", err))
		}
		if err := l.recomputeGroups(); err != nil {
			slog.Error("Failed to recompute groups", slog.String("component", "NoteLogic.BatchCreateNotes"), slog.Any("error", err))
		}
	})

	return result, nil
}

func (l *NoteLogic) GetNote(id string) (*types.Note, error) {
	note, err := l.core.Store().NoteStore().Get(l.ctx, l.GetUserInfo().User, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("NoteLogic.GetNote.NoteStore.Get", i18n.ERROR_NOT_FOUND, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("NoteLogic.GetNote.NoteStore.Get", i18n.ERROR_INTERNAL, err)
	}
	return note, nil
}

func (l *NoteLogic) ListNotes(page, pageSize uint64) ([]types.Note, int64, error) {
	opts := types.GetNoteOptions{
		UserID: l.GetUserInfo().User,
	}

	notes, err := l.core.Store().NoteStore().List(l.ctx, opts, page, pageSize)
	if err != nil {
		return nil, 0, errors.New("NoteLogic.ListNotes.NoteStore.List", i18n.ERROR_INTERNAL, err)
	}

	total, err := l.core.Store().NoteStore().Total(l.ctx, opts)
	if err != nil {
		return nil, 0, errors.New("NoteLogic.ListNotes.NoteStore.Total", i18n.ERROR_INTERNAL, err)
	}

	return notes, total, nil
}

func (l *NoteLogic) UpdateNote(id, title, content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("NoteLogic.UpdateNote.EmptyContent", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	note, err := l.GetNote(id)
	if err != nil {
		return err
	}

	if err = l.core.Store().NoteStore().Update(l.ctx, note.UserID, note.ID, types.UpdateNoteArgs{
		Title:   title,
		Content: content,
	}); err != nil {
		return errors.New("NoteLogic.UpdateNote.NoteStore.Update", i18n.ERROR_INTERNAL, err)
	}

	note.Title = title
	note.Content = content
	l.syncDerivedState(*note)

	return nil
}

func (l *NoteLogic) DeleteNote(id string) error {
	note, err := l.GetNote(id)
	if err != nil {
		return err
	}

	if err = l.core.Store().NoteStore().Delete(l.ctx, note.UserID, note.ID); err != nil {
		return errors.New("NoteLogic.DeleteNote.NoteStore.Delete", i18n.ERROR_INTERNAL, err)
	}

	safe.Run(func() {
		if err := l.core.Store().FragmentStore().DeleteByNote(l.ctx, note.UserID, note.ID); err != nil {
			slog.Error("Failed to delete note fragments", slog.String("component", "NoteLogic.DeleteNote"), slog.String("note_id", note.ID), slog.Any("error", err))
		}
		if err := l.recomputeGroups(); err != nil {
			slog.Error("Failed to recompute groups", slog.String("component", "NoteLogic.DeleteNote"), slog.Any("error", err))
		}
	})

	return nil
}

// syncDerivedState refreshes the note's fragments and the user's groups.
// Both are best-effort: the relational write already succeeded and must not
// be rolled back by derived-state failures, so search and grouping may lag
// behind until the next successful sync.
func (l *NoteLogic) syncDerivedState(note types.Note) {
	safe.Run(func() {
		if err := l.syncNoteFragments(note); err != nil {
			slog.Error("Failed to sync note fragments", slog.String("component", "NoteLogic.syncDerivedState"), slog.String("note_id", note.ID), slog.Any("error", err))
		}
		if err := l.recomputeGroups(); err != nil {
			slog.Error("Failed to recompute groups", slog.String("component", "NoteLogic.syncDerivedState"), slog.Any("error", err))
		}
	})
}

// syncNoteFragments purges the note's stale fragments and rebuilds them
// from scratch. Fragments are never patched incrementally.
func (l *NoteLogic) syncNoteFragments(note types.Note) error {
	if err := l.core.Store().FragmentStore().DeleteByNote(l.ctx, note.UserID, note.ID); err != nil {
		return errors.New("NoteLogic.syncNoteFragments.FragmentStore.DeleteByNote", i18n.ERROR_INTERNAL, err)
	}

	fragments, err := l.buildNoteFragments(note)
	if err != nil {
		return err
	}

	if err = l.core.Store().FragmentStore().BatchCreate(l.ctx, fragments); err != nil {
		return errors.New("NoteLogic.syncNoteFragments.FragmentStore.BatchCreate", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

// batchSyncFragments builds fragments for freshly inserted notes and writes
// them in one upsert call.
func (l *NoteLogic) batchSyncFragments(notes []types.Note) error {
	var all []types.Fragment
	for _, note := range notes {
		fragments, err := l.buildNoteFragments(note)
		if err != nil {
			return err
		}
		all = append(all, fragments...)
	}

	if err := l.core.Store().FragmentStore().BatchCreate(l.ctx, all); err != nil {
		return errors.New("NoteLogic.batchSyncFragments.FragmentStore.BatchCreate", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

// buildNoteFragments embeds the note as one full-text fragment for
// clustering plus one fragment per overlapping window for retrieval.
func (l *NoteLogic) buildNoteFragments(note types.Note) ([]types.Fragment, error) {
	text := note.EmbeddingText()
	chunks := chunk.Split(text)
	inputs := append([]string{text}, chunks...)

	timer := l.core.Metrics().EmbeddingTimer("document")
	res, err := l.core.Srv().AI().EmbeddingForDocument(l.ctx, note.Title, inputs)
	timer.ObserveDuration()
	if err != nil {
		return nil, errors.New("NoteLogic.buildNoteFragments.EmbeddingForDocument", i18n.ERROR_INTERNAL, err)
	}
	if len(res.Data) != len(inputs) {
		return nil, errors.New("NoteLogic.buildNoteFragments.EmbeddingMismatch", i18n.ERROR_INTERNAL, nil)
	}

	now := time.Now().Unix()
	fragments := []types.Fragment{
		{
			ID:        utils.GenUniqIDStr(),
			NoteID:    note.ID,
			UserID:    note.UserID,
			Kind:      types.FRAGMENT_KIND_FULL,
			Content:   text,
			Embedding: pgvector.NewVector(res.Data[0]),
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	for i, c := range chunks {
		fragments = append(fragments, types.Fragment{
			ID:         utils.GenUniqIDStr(),
			NoteID:     note.ID,
			UserID:     note.UserID,
			Kind:       types.FRAGMENT_KIND_CHUNK,
			ChunkIndex: i,
			Content:    c,
			Embedding:  pgvector.NewVector(res.Data[i+1]),
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	return fragments, nil
}

// recomputeGroups throws away the user's whole group set and rebuilds it
// from the current notes. Concurrent writers race on this; the last one
// wins and a reader may briefly observe no groups at all.
func (l *NoteLogic) recomputeGroups() error {
	userID := l.GetUserInfo().User

	notes, err := l.core.Store().NoteStore().List(l.ctx, types.GetNoteOptions{UserID: userID}, types.NO_PAGING, types.NO_PAGING)
	if err != nil {
		return errors.New("NoteLogic.recomputeGroups.NoteStore.List", i18n.ERROR_INTERNAL, err)
	}

	if len(notes) == 0 {
		return l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
			return l.core.Store().GroupStore().DeleteAll(ctx, userID)
		})
	}

	docs := lo.Map(notes, func(item types.Note, _ int) cluster.Document {
		return cluster.Document{
			ID:      item.ID,
			Content: item.EmbeddingText(),
		}
	})

	timer := l.core.Metrics().ClusterTimer()
	assignments, err := l.core.Srv().Cluster().Cluster(l.ctx, docs)
	timer.ObserveDuration()
	if err != nil {
		return errors.New("NoteLogic.recomputeGroups.Cluster", i18n.ERROR_INTERNAL, err)
	}

	labels, err := l.core.Srv().Cluster().TopicLabels(l.ctx)
	if err != nil {
		return errors.New("NoteLogic.recomputeGroups.TopicLabels", i18n.ERROR_INTERNAL, err)
	}

	return l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().GroupStore().DeleteAll(ctx, userID); err != nil {
			return errors.New("NoteLogic.recomputeGroups.GroupStore.DeleteAll", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().NoteStore().ResetGroups(ctx, userID); err != nil {
			return errors.New("NoteLogic.recomputeGroups.NoteStore.ResetGroups", i18n.ERROR_INTERNAL, err)
		}

		now := time.Now().Unix()
		groupByCluster := make(map[int]string)
		for _, a := range assignments {
			if a.ClusterID == cluster.OutlierID {
				continue
			}

			groupID, ok := groupByCluster[a.ClusterID]
			if !ok {
				groupID = utils.GenUniqIDStr()
				if err := l.core.Store().GroupStore().Create(ctx, types.Group{
					ID:        groupID,
					UserID:    userID,
					Summary:   labels[a.ClusterID],
					CreatedAt: now,
					UpdatedAt: now,
				}); err != nil {
					return errors.New("NoteLogic.recomputeGroups.GroupStore.Create", i18n.ERROR_INTERNAL, err)
				}
				groupByCluster[a.ClusterID] = groupID
			}

			if err := l.core.Store().NoteStore().SetGroup(ctx, userID, a.ID, groupID); err != nil {
				return errors.New("NoteLogic.recomputeGroups.NoteStore.SetGroup", i18n.ERROR_INTERNAL, err)
			}
		}
		return nil
	})
}
