package v1

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/sakura-notes/sakura/app/core"
	"github.com/sakura-notes/sakura/pkg/errors"
	"github.com/sakura-notes/sakura/pkg/i18n"
	"github.com/sakura-notes/sakura/pkg/types"
)

type GroupLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewGroupLogic(ctx context.Context, core *core.Core) *GroupLogic {
	return &GroupLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}
}

func (l *GroupLogic) ListGroups() ([]types.Group, error) {
	groups, err := l.core.Store().GroupStore().List(l.ctx, types.GetGroupOptions{
		UserID: l.GetUserInfo().User,
	})
	if err != nil {
		return nil, errors.New("GroupLogic.ListGroups.GroupStore.List", i18n.ERROR_INTERNAL, err)
	}
	return groups, nil
}

// GetGroup returns the group with its current member notes. Membership is
// derived, recomputed by the clustering sync rather than edited directly.
func (l *GroupLogic) GetGroup(id string) (*types.GroupWithNotes, error) {
	userID := l.GetUserInfo().User

	group, err := l.core.Store().GroupStore().Get(l.ctx, userID, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("GroupLogic.GetGroup.GroupStore.Get", i18n.ERROR_NOT_FOUND, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("GroupLogic.GetGroup.GroupStore.Get", i18n.ERROR_INTERNAL, err)
	}

	notes, err := l.core.Store().NoteStore().List(l.ctx, types.GetNoteOptions{
		UserID:  userID,
		GroupID: group.ID,
	}, types.NO_PAGING, types.NO_PAGING)
	if err != nil {
		return nil, errors.New("GroupLogic.GetGroup.NoteStore.List", i18n.ERROR_INTERNAL, err)
	}

	return &types.GroupWithNotes{
		Group: *group,
		Notes: notes,
	}, nil
}
