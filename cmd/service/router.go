package service

import (
	"github.com/gin-gonic/gin"

	"github.com/sakura-notes/sakura/app/core"
	v1 "github.com/sakura-notes/sakura/app/logic/v1"
	"github.com/sakura-notes/sakura/app/response"
	"github.com/sakura-notes/sakura/cmd/service/handler"
	"github.com/sakura-notes/sakura/cmd/service/middleware"
	"github.com/sakura-notes/sakura/pkg/metrics"
)

func serve(core *core.Core) {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	core.HttpEngine().Run(core.Cfg().Addr)
}

func GetIPLimitBuilder(appCore *core.Core) middleware.LimiterFunc {
	return func(key string) gin.HandlerFunc {
		return middleware.UseLimit(appCore, func(c *gin.Context) string {
			return key + ":" + c.ClientIP()
		})
	}
}

func GetUserLimitBuilder(appCore *core.Core) middleware.LimiterFunc {
	return func(key string) gin.HandlerFunc {
		return middleware.UseLimit(appCore, func(c *gin.Context) string {
			token, _ := v1.InjectTokenClaim(c)
			return key + ":" + token.User
		})
	}
}

func setupHttpRouter(s *handler.HttpSrv) {
	ipLimit := GetIPLimitBuilder(s.Core)
	userLimit := GetUserLimitBuilder(s.Core)

	s.Engine.Use(middleware.I18n(), response.NewResponse())
	s.Engine.Use(middleware.Cors)
	s.Engine.Use(middleware.AcceptLanguage())
	s.Engine.Use(middleware.Metrics(s.Core))

	s.Engine.GET("/metrics", metrics.Handler())

	apiV1 := s.Engine.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", ipLimit("register"), s.Register)
			auth.POST("/login", ipLimit("login"), s.Login)
		}

		authed := apiV1.Group("")
		authed.Use(middleware.Authorization(s.Core))

		user := authed.Group("/user")
		{
			user.GET("/info", s.GetUserInfo)
			user.PUT("/profile", userLimit("profile"), s.UpdateUserProfile)
		}

		note := authed.Group("/note")
		{
			note.POST("", userLimit("note"), s.CreateNote)
			note.POST("/batch", userLimit("note"), s.BatchCreateNotes)
			note.GET("/list", s.ListNotes)
			note.GET("/:id", s.GetNote)
			note.PUT("", s.UpdateNote)
			note.DELETE("/:id", s.DeleteNote)
		}

		authed.POST("/query", userLimit("query"), s.Query)
		authed.POST("/ask", userLimit("ask"), s.GenerateAnswer)

		answer := authed.Group("/answer")
		{
			answer.GET("/list", s.ListAnswers)
			answer.GET("/:id", s.GetAnswer)
			answer.DELETE("/:id", s.DeleteAnswer)
			answer.POST("/to-note", s.ConvertAnswerToNote)
		}

		group := authed.Group("/group")
		{
			group.GET("/list", s.ListGroups)
			group.GET("/:id", s.GetGroup)
		}
	}
}
