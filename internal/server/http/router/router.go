package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/registrar/internal/server/http/handlers"
	"github.com/polkiloo/registrar/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.RegistrarFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Compression())

	authHandler := handlers.NewAuthHandler(facade)
	userHandler := handlers.NewUserHandler()
	homeHandler := handlers.NewHomeHandler(facade)

	engine.GET("/", homeHandler.Index)
	engine.GET("/health", homeHandler.Health)
	engine.GET("/user", middleware.AuthRequired(facade), userHandler.Me)

	v1 := engine.Group("/v1")
	auth := v1.Group("/auth")
	auth.POST("/registrar", authHandler.Register)

	return engine
}
