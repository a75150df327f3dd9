package api

import (
	"Meridian/internal/api/middleware"
	"Meridian/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		contentGroup := apiGroup.Group("/content")
		{
			// 固定视图在参数路由之前注册, 避免被 :id 吞掉
			contentGroup.GET("", group.ListingHandler.GetAllContent)
			contentGroup.GET("/category", group.ListingHandler.GetCategoryContent)
			contentGroup.GET("/home", group.ListingHandler.GetHomeContent)
			contentGroup.GET("/:id", group.ContentHandler.GetContent)

			contentGroup.POST("", group.ContentHandler.CreateContent)
			contentGroup.PUT("", group.ContentHandler.UpdateContent)
			contentGroup.DELETE("/:id", group.ContentHandler.DeclineContent)
		}
	}

	return r
}
