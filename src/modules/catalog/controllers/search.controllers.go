package catalog

import (
	"net/http"

	service "cinestash/src/modules/catalog/services"
	"cinestash/src/utils"

	"github.com/gin-gonic/gin"
)

type SearchController struct {
	search *service.SearchService
}

func NewSearchController(search *service.SearchService) *SearchController {
	return &SearchController{search: search}
}

func (h *SearchController) Search(c *gin.Context) {
	res, err := h.search.Search(c.Request.Context(), c.Param("keyword"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
