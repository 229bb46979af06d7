// Package http wires the REST API and the signaling WebSocket endpoint
// into one gin router.
package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/openclass/classroom/internal/adapters/signal"
	"github.com/openclass/classroom/internal/app"
	"github.com/openclass/classroom/internal/config"
	"github.com/openclass/classroom/internal/store"
)

type Deps struct {
	Users       *store.UserStore
	Courses     *store.CourseStore
	Quizzes     *store.QuizStore
	LiveClasses *store.LiveClassStore
	Coordinator *app.Coordinator
}

func SetupRouter(ctx context.Context, cfg *config.Config, d Deps) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = 32 << 20

	r.Static("/upload", cfg.UploadDir)
	r.GET("/", func(c *gin.Context) {
		c.String(200, "Virtual Classroom API running")
	})

	authHandler := &AuthHandler{Users: d.Users, Secret: cfg.Secret}
	courseHandler := &CourseHandler{Courses: d.Courses, UploadDir: cfg.UploadDir}
	quizHandler := &QuizHandler{Quizzes: d.Quizzes}
	liveHandler := &LiveClassHandler{Classes: d.LiveClasses, Users: d.Users}

	api := r.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	sig := signal.NewController(d.Coordinator, cfg.ReadLimit, cfg.PingPeriod)
	api.GET("/ws/signal", func(c *gin.Context) {
		sig.HandleSignal(ctx, c)
	})

	authed := api.Group("", AuthRequired(cfg.Secret))

	courses := authed.Group("/courses")
	courses.GET("", courseHandler.List)
	courses.POST("", courseHandler.Create)
	courses.GET("/mine", courseHandler.ListMine)
	courses.GET("/:id", courseHandler.Get)
	courses.PUT("/:id", courseHandler.Update)
	courses.DELETE("/:id", courseHandler.Delete)
	courses.POST("/:id/upload", courseHandler.Upload)
	courses.POST("/:id/enroll", courseHandler.Enroll)

	quizzes := authed.Group("/quizzes")
	quizzes.GET("", quizHandler.List)
	quizzes.POST("", quizHandler.Create)
	quizzes.GET("/mine", quizHandler.ListMine)
	quizzes.GET("/:id", quizHandler.Get)
	quizzes.DELETE("/:id", quizHandler.Delete)
	quizzes.POST("/:id/add-question", quizHandler.AddQuestion)
	quizzes.POST("/:id/submit", quizHandler.Submit)

	live := authed.Group("/liveclasses")
	live.GET("", liveHandler.List)
	live.POST("", liveHandler.Create)
	live.GET("/mine", liveHandler.ListMine)
	live.GET("/:id", liveHandler.Get)
	live.DELETE("/:id", liveHandler.Delete)
	live.POST("/:id/join", liveHandler.Join)
	live.POST("/:id/leave", liveHandler.Leave)

	log.Info().Str("module", "adapters.http").Str("upload", cfg.UploadDir).Msg("router setup")
	return r
}
