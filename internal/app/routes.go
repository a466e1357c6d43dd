package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/giftloom/core/internal/middleware"
	"github.com/giftloom/core/internal/modules/ask"
	"github.com/giftloom/core/internal/modules/auth"
	"github.com/giftloom/core/internal/modules/content/card"
	"github.com/giftloom/core/internal/modules/content/gift"
	"github.com/giftloom/core/internal/modules/content/quiz"
	"github.com/giftloom/core/internal/modules/content/valentine"
	"github.com/giftloom/core/internal/modules/resolve"
	pkgredis "github.com/giftloom/core/internal/pkg/redis"
	"github.com/giftloom/core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{
			"ok": 0, "code": http.StatusMethodNotAllowed, "message": "method not allowed",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth())
	api.Use(middleware.RateLimit(rc.Raw()))

	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/uptime", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uptime_ms": uptime().Milliseconds()})
	})

	// Public viewing: slug resolution plus layout dispatch.
	resolveSvc := resolve.NewService(resolve.NewStore(db), a.logger)
	resolve.NewHandler(resolveSvc).RegisterRoutes(api)

	// Visitor responses for valentine_ask sites.
	askSvc := ask.NewService(ask.NewStore(db), ask.NewRedisGuard(rc), a.logger)
	ask.NewHandler(askSvc).RegisterRoutes(api, authMW)

	// Accounts and authoring.
	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api, authMW)
	gift.NewHandler(gift.NewService(db)).RegisterRoutes(api, authMW)
	valentine.NewHandler(valentine.NewService(db)).RegisterRoutes(api, authMW)
	quiz.NewHandler(quiz.NewService(db)).RegisterRoutes(api)
	card.NewHandler(card.NewService(db)).RegisterRoutes(api, authMW)
}
