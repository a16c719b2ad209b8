package routes

import (
	"net/http"

	catalog "cinestash/src/modules/catalog/controllers"
	events "cinestash/src/modules/events/controllers"
	media "cinestash/src/modules/media/controllers"
	sitemap "cinestash/src/modules/sitemap/controllers"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Movies  *catalog.MovieController
	Series  *catalog.SeriesController
	Search  *catalog.SearchController
	Sitemap *sitemap.SitemapController
	Events  *events.WebSocketController
	// Files is nil unless the MinIO driver is active.
	Files *media.FileController
	// Ready reports whether the store is reachable.
	Ready func(c *gin.Context) bool
}

func RegisterRoutes(router *gin.Engine, h Handlers) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		if h.Ready != nil && h.Ready(c) {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
		} else {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		}
	})

	if h.Events != nil {
		router.GET("/ws", h.Events.Handle)
	}

	movieRoutes := router.Group("/movie")
	{
		movieRoutes.POST("/", h.Movies.Create)
		movieRoutes.POST("/auto", h.Movies.AutoCreate)
		movieRoutes.POST("/auto/id", h.Movies.AutoCreateByID)
		movieRoutes.GET("/", h.Movies.List)
		movieRoutes.GET("/id/:id", h.Movies.GetByID)
		movieRoutes.GET("/search/:keyword", h.Movies.Search)
		movieRoutes.GET("/tag/:tag", h.Movies.SearchByTag)
		movieRoutes.GET("/popular", h.Movies.Popular)
		movieRoutes.GET("/:slug", h.Movies.GetBySlug)
		movieRoutes.POST("/:id/watch", h.Movies.Watch)
		movieRoutes.PATCH("/movie/:id", h.Movies.UpdateLink)
		movieRoutes.PATCH("/image/:id", h.Movies.UpdateImage)
		movieRoutes.PATCH("/title/:id", h.Movies.UpdateTitle)
		movieRoutes.DELETE("/:movieId", h.Movies.Delete)
	}

	seriesRoutes := router.Group("/series")
	{
		seriesRoutes.POST("/", h.Series.Create)
		seriesRoutes.POST("/auto", h.Series.AutoCreate)
		seriesRoutes.POST("/auto/id", h.Series.AutoCreateByID)
		seriesRoutes.GET("/", h.Series.List)
		seriesRoutes.GET("/id/:id", h.Series.GetByID)
		seriesRoutes.GET("/search/:keyword", h.Series.Search)
		seriesRoutes.GET("/tag/:tag", h.Series.SearchByTag)
		seriesRoutes.GET("/popular", h.Series.Popular)
		seriesRoutes.GET("/:slug", h.Series.GetBySlug)
		seriesRoutes.POST("/:id/watch", h.Series.Watch)
		seriesRoutes.PATCH("/episode/:id", h.Series.AppendEpisodes)
		seriesRoutes.PATCH("/image/:id", h.Series.UpdateImage)
		seriesRoutes.PATCH("/title/:id", h.Series.UpdateTitle)
		seriesRoutes.DELETE("/:seriesId", h.Series.Delete)
		seriesRoutes.DELETE("/:seriesId/:episodeId", h.Series.RemoveEpisode)
	}

	router.GET("/search/:keyword", h.Search.Search)
	router.GET("/sitemap.xml", h.Sitemap.Serve)

	// Static proxy for MinIO objects
	if h.Files != nil {
		router.GET("/static/*filepath", h.Files.Serve)
	}
}
