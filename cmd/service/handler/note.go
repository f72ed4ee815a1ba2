package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/sakura-notes/sakura/app/logic/v1"
	"github.com/sakura-notes/sakura/app/response"
	"github.com/sakura-notes/sakura/pkg/types"
	"github.com/sakura-notes/sakura/pkg/utils"
)

type CreateNoteRequest struct {
	Title   string `json:"title" form:"title" binding:"max=255"`
	Content string `json:"content" form:"content" binding:"required"`
}

type CreateNoteResponse struct {
	ID string `json:"id"`
}

func (s *HttpSrv) CreateNote(c *gin.Context) {
	var (
		err error
		req CreateNoteRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	id, err := v1.NewNoteLogic(c, s.Core).CreateNote(req.Title, req.Content)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, CreateNoteResponse{
		ID: id,
	})
}

type BatchCreateNotesRequest struct {
	Notes []v1.NoteCreatePayload `json:"notes" form:"notes" binding:"required"`
}

func (s *HttpSrv) BatchCreateNotes(c *gin.Context) {
	var (
		err error
		req BatchCreateNotesRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	result, err := v1.NewNoteLogic(c, s.Core).BatchCreateNotes(req.Notes)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}

func (s *HttpSrv) GetNote(c *gin.Context) {
	id, _ := c.Params.Get("id")

	note, err := v1.NewNoteLogic(c, s.Core).GetNote(id)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, note)
}

type ListNotesRequest struct {
	Page     uint64 `json:"page" form:"page"`
	PageSize uint64 `json:"pagesize" form:"pagesize" binding:"max=100"`
}

type ListNotesResponse struct {
	List  []types.Note `json:"list"`
	Total int64        `json:"total"`
}

func (s *HttpSrv) ListNotes(c *gin.Context) {
	var (
		err error
		req ListNotesRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	list, total, err := v1.NewNoteLogic(c, s.Core).ListNotes(req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ListNotesResponse{
		List:  list,
		Total: total,
	})
}

type UpdateNoteRequest struct {
	ID      string `json:"id" form:"id" binding:"required"`
	Title   string `json:"title" form:"title" binding:"max=255"`
	Content string `json:"content" form:"content" binding:"required"`
}

func (s *HttpSrv) UpdateNote(c *gin.Context) {
	var (
		err error
		req UpdateNoteRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	if err = v1.NewNoteLogic(c, s.Core).UpdateNote(req.ID, req.Title, req.Content); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) DeleteNote(c *gin.Context) {
	id, _ := c.Params.Get("id")

	if err := v1.NewNoteLogic(c, s.Core).DeleteNote(id); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}
