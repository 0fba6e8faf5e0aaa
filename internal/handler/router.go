package handler

import (
	"net/http"

	_ "github.com/ndp-coder/Coustmize-ai-backend/docs"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// NewRouter wires every route of the API onto a fresh engine.
func NewRouter(h *Handler, tokens middleware.TokenValidator, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger(logger), middleware.Recovery(logger))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")
	router.Use(cors.New(config))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	protected := router.Group("/api", middleware.AuthMiddleware(tokens))
	{
		protected.GET("/profile", h.GetProfile)
		protected.POST("/profile", h.UpdateProfile)

		protected.GET("/chats", h.ListChats)
		protected.POST("/chats/new", h.NewChat)
		protected.POST("/chats/save", h.SaveChat)
		protected.GET("/chats/:chatId", h.GetChat)
		protected.PUT("/chats/:chatId/rename", h.RenameChat)
		protected.DELETE("/chats/:chatId", h.DeleteChat)

		protected.POST("/gemini", h.Gemini)
	}
	return router
}
