package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sakura-notes/sakura/app/core"
)

type HttpSrv struct {
	Core   *core.Core
	Engine *gin.Engine
}
