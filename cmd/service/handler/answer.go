package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/sakura-notes/sakura/app/logic/v1"
	"github.com/sakura-notes/sakura/app/response"
	"github.com/sakura-notes/sakura/pkg/types"
	"github.com/sakura-notes/sakura/pkg/utils"
)

type GenerateAnswerRequest struct {
	Query     string  `json:"query" form:"query" binding:"required"`
	Limit     uint64  `json:"limit" form:"limit" binding:"max=50"`
	Threshold float32 `json:"threshold" form:"threshold" binding:"max=1"`
}

func (s *HttpSrv) GenerateAnswer(c *gin.Context) {
	var (
		err error
		req GenerateAnswerRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	answer, err := v1.NewAnswerLogic(c, s.Core).GenerateAnswer(req.Query, req.Limit, req.Threshold)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, answer)
}

func (s *HttpSrv) GetAnswer(c *gin.Context) {
	id, _ := c.Params.Get("id")

	answer, err := v1.NewAnswerLogic(c, s.Core).GetAnswer(id)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, answer)
}

type ListAnswersRequest struct {
	Page     uint64 `json:"page" form:"page"`
	PageSize uint64 `json:"pagesize" form:"pagesize" binding:"max=100"`
}

type ListAnswersResponse struct {
	List  []types.Answer `json:"list"`
	Total int64          `json:"total"`
}

func (s *HttpSrv) ListAnswers(c *gin.Context) {
	var (
		err error
		req ListAnswersRequest
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

	list, total, err := v1.NewAnswerLogic(c, s.Core).ListAnswers(req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ListAnswersResponse{
		List:  list,
		Total: total,
	})
}

func (s *HttpSrv) DeleteAnswer(c *gin.Context) {
	id, _ := c.Params.Get("id")

	if err := v1.NewAnswerLogic(c, s.Core).DeleteAnswer(id); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

type ConvertAnswerToNoteRequest struct {
	ID string `json:"id" form:"id" binding:"required"`
}

type ConvertAnswerToNoteResponse struct {
	NoteID string `json:"note_id"`
}

func (s *HttpSrv) ConvertAnswerToNote(c *gin.Context) {
	var (
		err error
		req ConvertAnswerToNoteRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	noteID, err := v1.NewAnswerLogic(c, s.Core).ConvertToNote(req.ID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ConvertAnswerToNoteResponse{
		NoteID: noteID,
	})
}
