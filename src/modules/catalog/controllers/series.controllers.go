package catalog

import (
	"net/http"

	models "cinestash/src/modules/catalog/models"
	service "cinestash/src/modules/catalog/services"
	"cinestash/src/utils"

	"github.com/gin-gonic/gin"
)

type SeriesController struct {
	Controller[models.Series, *models.Series, models.PopularSeries, *models.PopularSeries]
	series *service.SeriesService
}

func NewSeriesController(series *service.SeriesService) *SeriesController {
	return &SeriesController{
		Controller: Controller[models.Series, *models.Series, models.PopularSeries, *models.PopularSeries]{svc: series.Service},
		series:     series,
	}
}

func (h *SeriesController) Create(c *gin.Context) {
	in, err := createInput(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	res, err := h.series.Create(c.Request.Context(), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *SeriesController) AutoCreate(c *gin.Context) {
	var req autoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.series.AutoCreate(c.Request.Context(), req.byTitle())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *SeriesController) AutoCreateByID(c *gin.Context) {
	var req autoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	auto, err := req.byID()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	res, err := h.series.AutoCreate(c.Request.Context(), auto)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *SeriesController) AppendEpisodes(c *gin.Context) {
	var req struct {
		Episode string `json:"episode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.series.AppendEpisodes(c.Request.Context(), c.Param("id"), req.Episode)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *SeriesController) RemoveEpisode(c *gin.Context) {
	res, err := h.series.RemoveEpisode(c.Request.Context(), c.Param("seriesId"), c.Param("episodeId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
