package v1

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/sakura-notes/sakura/app/core"
	"github.com/sakura-notes/sakura/pkg/errors"
	"github.com/sakura-notes/sakura/pkg/i18n"
	"github.com/sakura-notes/sakura/pkg/security"
	"github.com/sakura-notes/sakura/pkg/types"
	"github.com/sakura-notes/sakura/pkg/utils"
)

// logic for unlogin
type UserLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewUserLogic(ctx context.Context, core *core.Core) *UserLogic {
	return &UserLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *UserLogic) Register(name, password string) (string, error) {
	exist, err := l.core.Store().UserStore().GetByName(l.ctx, name)
	if err != nil && err != sql.ErrNoRows {
		return "", errors.New("UserLogic.Register.UserStore.GetByName", i18n.ERROR_INTERNAL, err)
	}
	if exist != nil {
		return "", errors.New("UserLogic.Register.Exist", i18n.ERROR_EXIST, nil).Code(http.StatusBadRequest)
	}

	salt := utils.RandomStr(10)
	userID := utils.GenUniqIDStr()

	err = l.core.Store().UserStore().Create(l.ctx, types.User{
		ID:        userID,
		Name:      name,
		Salt:      salt,
		Password:  utils.GenUserPassword(salt, password),
		CreatedAt: time.Now().Unix(),
		UpdatedAt: time.Now().Unix(),
	})
	if err != nil {
		return "", errors.New("UserLogic.Register.UserStore.Create", i18n.ERROR_INTERNAL, err)
	}

	return userID, nil
}

const tokenTTL = time.Hour * 24 * 30

func (l *UserLogic) Login(name, password string) (string, error) {
	user, err := l.core.Store().UserStore().GetByName(l.ctx, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", errors.New("UserLogic.Login.UserStore.GetByName", i18n.ERROR_LOGIN_ACCOUNT_INCORRECT, err).Code(http.StatusForbidden)
		}
		return "", errors.New("UserLogic.Login.UserStore.GetByName", i18n.ERROR_INTERNAL, err)
	}

	if user.Password != utils.GenUserPassword(user.Salt, password) {
		return "", errors.New("UserLogic.Login.PasswordIncorrect", i18n.ERROR_LOGIN_ACCOUNT_INCORRECT, nil).Code(http.StatusForbidden)
	}

	claims := security.NewTokenClaims(user.ID, user.Name, time.Now().Add(tokenTTL).Unix())
	token, err := security.GenJWTToken(claims, l.core.Cfg().Security.TokenSecret)
	if err != nil {
		return "", errors.New("UserLogic.Login.GenJWTToken", i18n.ERROR_INTERNAL, err)
	}

	return token, nil
}

type AuthedUserLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewAuthedUserLogic(ctx context.Context, core *core.Core) *AuthedUserLogic {
	return &AuthedUserLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}
}

func (l *AuthedUserLogic) UpdateProfile(userName, avatar string) error {
	if strings.TrimSpace(userName) == "" {
		return errors.New("AuthedUserLogic.UpdateProfile.EmptyName", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	if err := l.core.Store().UserStore().UpdateUserProfile(l.ctx, l.GetUserInfo().User, userName, avatar); err != nil {
		return errors.New("AuthedUserLogic.UpdateProfile.UserStore.UpdateUserProfile", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

func (l *AuthedUserLogic) GetUser() (*types.User, error) {
	user, err := l.core.Store().UserStore().GetUser(l.ctx, l.GetUserInfo().User)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("AuthedUserLogic.GetUser.UserStore.GetUser", i18n.ERROR_NOT_FOUND, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("AuthedUserLogic.GetUser.UserStore.GetUser", i18n.ERROR_INTERNAL, err)
	}
	return user, nil
}
