package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/sakura-notes/sakura/app/logic/v1"
	"github.com/sakura-notes/sakura/app/response"
	"github.com/sakura-notes/sakura/pkg/utils"
)

type RegisterRequest struct {
	Name     string `json:"name" form:"name" binding:"required,max=32"`
	Password string `json:"password" form:"password" binding:"required,min=6,max=64"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

func (s *HttpSrv) Register(c *gin.Context) {
	var (
		err error
		req RegisterRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	userID, err := v1.NewUserLogic(c, s.Core).Register(req.Name, req.Password)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, RegisterResponse{
		UserID: userID,
	})
}

type LoginRequest struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (s *HttpSrv) Login(c *gin.Context) {
	var (
		err error
		req LoginRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	token, err := v1.NewUserLogic(c, s.Core).Login(req.Name, req.Password)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, LoginResponse{
		Token: token,
	})
}

type UpdateUserProfileRequest struct {
	UserName string `json:"user_name" form:"user_name" binding:"required,max=32"`
	Avatar   string `json:"avatar" form:"avatar" binding:"max=255"`
}

func (s *HttpSrv) UpdateUserProfile(c *gin.Context) {
	var (
		err error
		req UpdateUserProfileRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	if err = v1.NewAuthedUserLogic(c, s.Core).UpdateProfile(req.UserName, req.Avatar); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

type UserInfoResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	CreatedAt int64  `json:"created_at"`
}

func (s *HttpSrv) GetUserInfo(c *gin.Context) {
	user, err := v1.NewAuthedUserLogic(c, s.Core).GetUser()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, UserInfoResponse{
		ID:        user.ID,
		Name:      user.Name,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
	})
}
