package api

import (
	"carebridge/internal/api/controllers"
	"carebridge/internal/config"
	"carebridge/internal/models/db_models"
	"carebridge/pkg/middleware"
	"carebridge/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Controllers groups every HTTP handler the router mounts.
type Controllers struct {
	fx.In

	Account *controllers.AccountController
	Client  *controllers.ClientController
	Session *controllers.SessionController
	Note    *controllers.NoteController
	Portal  *controllers.ClientPortalController
}

func NewRouter(cfg config.Config, log *zap.Logger, tokens *utils.TokenManager, ctl Controllers) *gin.Engine {
	utils.RegisterJSONFieldNames()

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))

	RegisterRoutes(r, tokens, ctl)
	return r
}

func RegisterRoutes(r *gin.Engine, tokens middleware.TokenVerifier, ctl Controllers) {
	r.GET("/health", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"status": "ok"}, "")
	})

	auth := r.Group("/auth")
	auth.POST("/signup", ctl.Account.SignUp)
	auth.POST("/login", ctl.Account.Login)

	authed := r.Group("/", middleware.Authenticate(tokens))
	authed.GET("/me", ctl.Account.Me)

	therapist := authed.Group("/therapists/:id",
		middleware.RequireRole(string(db_models.RoleTherapist)),
		middleware.RequireSameSubject("id"),
	)

	clients := therapist.Group("/clients")
	clients.GET("", ctl.Client.ListClients)
	clients.POST("", ctl.Client.CreateClient)
	clients.PATCH("/:clientId", ctl.Client.UpdateClient)
	clients.DELETE("/:clientId", ctl.Client.RemoveClient)
	clients.GET("/:clientId/checkins", ctl.Client.ListClientCheckins)

	sessions := therapist.Group("/sessions")
	sessions.GET("", ctl.Session.ListSessions)
	sessions.POST("", ctl.Session.CreateSession)
	sessions.GET("/:sid", ctl.Session.GetSession)
	sessions.PATCH("/:sid", ctl.Session.UpdateSession)
	sessions.DELETE("/:sid", ctl.Session.DeleteSession)

	notes := sessions.Group("/:sid/notes")
	notes.GET("", ctl.Note.ListNotes)
	notes.POST("", ctl.Note.CreateNote)
	notes.GET("/:nid", ctl.Note.GetNote)
	notes.PATCH("/:nid", ctl.Note.UpdateNote)
	notes.DELETE("/:nid", ctl.Note.DeleteNote)

	client := authed.Group("/client", middleware.RequireRole(string(db_models.RoleClient)))
	client.GET("/today", ctl.Portal.Today)
	client.GET("/checkins", ctl.Portal.ListCheckins)
	client.POST("/checkins", ctl.Portal.CreateCheckin)
	client.GET("/sessions", ctl.Portal.ListSessions)
	client.GET("/goals", ctl.Portal.ListGoals)
	client.POST("/goals", ctl.Portal.CreateGoal)
	client.PATCH("/goals/:gid", ctl.Portal.UpdateGoal)
	client.POST("/goals/:gid/updates", ctl.Portal.AddGoalUpdate)
}
