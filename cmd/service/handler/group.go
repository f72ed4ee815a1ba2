package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/sakura-notes/sakura/app/logic/v1"
	"github.com/sakura-notes/sakura/app/response"
	"github.com/sakura-notes/sakura/pkg/types"
)

type ListGroupsResponse struct {
	List []types.Group `json:"list"`
}

func (s *HttpSrv) ListGroups(c *gin.Context) {
	groups, err := v1.NewGroupLogic(c, s.Core).ListGroups()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ListGroupsResponse{
		List: groups,
	})
}

func (s *HttpSrv) GetGroup(c *gin.Context) {
	id, _ := c.Params.Get("id")

	group, err := v1.NewGroupLogic(c, s.Core).GetGroup(id)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, group)
}
