package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/sakura-notes/sakura/app/logic/v1"
	"github.com/sakura-notes/sakura/app/response"
	"github.com/sakura-notes/sakura/pkg/utils"
)

type QueryRequest struct {
	Query string `json:"query" form:"query" binding:"required"`
}

type QueryResponse struct {
	List []v1.NoteMatch `json:"list"`
}

func (s *HttpSrv) Query(c *gin.Context) {
	var (
		err error
		req QueryRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	matches, err := v1.NewQueryLogic(c, s.Core).Query(req.Query)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, QueryResponse{
		List: matches,
	})
}
