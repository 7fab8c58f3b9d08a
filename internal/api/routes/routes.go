package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/maplepath/api/internal/api/handlers"
	"github.com/maplepath/api/internal/api/middleware"
)

type Deps struct {
	Tokens middleware.TokenParser

	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Settle   *handlers.SettleHandler
	Industry *handlers.IndustryHandler
	CV       *handlers.CVHandler

	// CORSAllowOrigins empty means any origin, without credentials.
	CORSAllowOrigins []string
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Disposition", middleware.HeaderRequestID},
		MaxAge:           12 * time.Hour,
		AllowCredentials: len(origins) > 0,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(cors.New(corsConfig(d.CORSAllowOrigins)))

	r.GET("/ping", d.Health.Ping)
	r.GET("/health", d.Health.Health)

	requireAuth := middleware.JWTAuth(d.Tokens)
	v1 := r.Group("/api/v1")

	authG := v1.Group("/auth")
	authG.POST("/register", d.Auth.Register)
	authG.POST("/login", d.Auth.Login)
	authG.POST("/google-auth", d.Auth.GoogleAuth)
	authG.GET("/me", requireAuth, d.Auth.Me)

	users := v1.Group("/users", requireAuth)
	users.GET("/profile", d.Users.Profile)
	users.PUT("/profile", d.Users.UpdateProfile)
	users.GET("/profile/:user_id", d.Users.PublicProfile)

	settle := v1.Group("/settle")
	settle.GET("/regions", d.Settle.ListRegions)
	settle.GET("/regions/:id", d.Settle.GetRegion)
	settle.GET("/regions/:id/purposes", d.Settle.ListRegionPurposes)
	settle.POST("/regions", requireAuth, d.Settle.CreateRegion)
	settle.PUT("/regions/:id", requireAuth, d.Settle.UpdateRegion)
	settle.DELETE("/regions/:id", requireAuth, d.Settle.DeleteRegion)

	settle.GET("/purposes", d.Settle.ListPurposes)
	settle.GET("/purposes/:id", d.Settle.GetPurpose)
	settle.POST("/purposes", requireAuth, d.Settle.CreatePurpose)
	settle.PUT("/purposes/:id", requireAuth, d.Settle.UpdatePurpose)
	settle.DELETE("/purposes/:id", requireAuth, d.Settle.DeletePurpose)

	mine := settle.Group("/user-purposes", requireAuth)
	mine.POST("", d.Settle.CreateUserPurpose)
	mine.GET("", d.Settle.ListUserPurposes)
	mine.GET("/:id", d.Settle.GetUserPurpose)
	mine.PUT("/:id", d.Settle.UpdateUserPurpose)
	mine.DELETE("/:id", d.Settle.DeleteUserPurpose)

	cv := v1.Group("/cv")
	cv.GET("/industries", d.Industry.List)
	cv.GET("/industries/:id", d.Industry.Get)
	cv.POST("/industries", requireAuth, middleware.RequireAdmin(), d.Industry.Create)

	cvAuth := cv.Group("", requireAuth)
	cvAuth.POST("/generate", d.CV.Generate)
	cvAuth.GET("/my-cvs", d.CV.List)
	cvAuth.GET("/my-cvs/:id", d.CV.Get)
	cvAuth.PATCH("/my-cvs/:id", d.CV.Update)
	cvAuth.DELETE("/my-cvs/:id", d.CV.Delete)
	cvAuth.POST("/my-cvs/:id/favorite", d.CV.ToggleFavorite)
	cvAuth.GET("/my-cvs/:id/export/pdf", d.CV.ExportPDF)
	cvAuth.POST("/my-cvs/:id/export", d.CV.Export)
	cvAuth.POST("/my-cvs/:id/publish", d.CV.Publish)
	cvAuth.GET("/my-cvs/:id/history", d.CV.History)
}
