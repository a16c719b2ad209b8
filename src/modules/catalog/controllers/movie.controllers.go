package catalog

import (
	"net/http"

	models "cinestash/src/modules/catalog/models"
	service "cinestash/src/modules/catalog/services"
	"cinestash/src/utils"

	"github.com/gin-gonic/gin"
)

type MovieController struct {
	Controller[models.Movie, *models.Movie, models.PopularMovie, *models.PopularMovie]
	movies *service.MovieService
}

func NewMovieController(movies *service.MovieService) *MovieController {
	return &MovieController{
		Controller: Controller[models.Movie, *models.Movie, models.PopularMovie, *models.PopularMovie]{svc: movies.Service},
		movies:     movies,
	}
}

func (h *MovieController) Create(c *gin.Context) {
	in, err := createInput(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	res, err := h.movies.Create(c.Request.Context(), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *MovieController) AutoCreate(c *gin.Context) {
	var req autoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.movies.AutoCreate(c.Request.Context(), req.byTitle(), req.Movie)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *MovieController) AutoCreateByID(c *gin.Context) {
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

	res, err := h.movies.AutoCreate(c.Request.Context(), auto, req.Movie)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *MovieController) UpdateLink(c *gin.Context) {
	var req struct {
		Movie string `json:"movie"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.movies.UpdateLink(c.Request.Context(), c.Param("id"), req.Movie)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
