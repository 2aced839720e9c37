package routes

import (
	"github.com/gin-gonic/gin"

	"stockroom/internal/handlers"
	"stockroom/internal/middleware"
	"stockroom/internal/ratelimit"
	"stockroom/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	itemHandler *handlers.ItemHandler,
	tokens *services.TokenService,
	loginLimiter *ratelimit.Limiter,
) *gin.Engine {

	// ---- public
	r.POST("/register", authHandler.Register)
	r.POST("/login", middleware.LoginRateLimiter(loginLimiter), authHandler.Login)

	// ---- identity
	r.GET("/me", middleware.RequireAuth(tokens), authHandler.Me)

	// ---- items: чтение публичное, мутации только владельцу
	items := r.Group("/api/items")
	{
		items.GET("/", itemHandler.List)
		items.GET("/:id", itemHandler.GetByID)
		items.POST("/", middleware.RequireAuth(tokens), itemHandler.Create)
		items.GET("/mine", middleware.RequireAuth(tokens), itemHandler.Mine)
		items.PUT("/:id", middleware.RequireAuth(tokens), itemHandler.Update)
		items.DELETE("/:id", middleware.RequireAuth(tokens), itemHandler.Delete)
	}

	return r
}
