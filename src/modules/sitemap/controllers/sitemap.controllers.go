package sitemap

import (
	"net/http"

	service "cinestash/src/modules/sitemap/services"
	"cinestash/src/utils"

	"github.com/gin-gonic/gin"
)

type SitemapController struct {
	builder *service.Builder
}

func NewSitemapController(builder *service.Builder) *SitemapController {
	return &SitemapController{builder: builder}
}

func (h *SitemapController) Serve(c *gin.Context) {
	body, err := h.builder.Render(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}
