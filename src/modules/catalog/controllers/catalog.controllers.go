package catalog

import (
	"net/http"

	models "cinestash/src/modules/catalog/models"
	service "cinestash/src/modules/catalog/services"
	media "cinestash/src/modules/media/services"
	"cinestash/src/utils"

	"github.com/gin-gonic/gin"
)

type titleRequest struct {
	Title string `json:"title"`
}

type autoRequest struct {
	Title    string `json:"title"`
	ID       string `json:"id"`
	Language string `json:"language"`
	Region   string `json:"region"`
	Movie    string `json:"movie"`
}

func (r autoRequest) byTitle() service.AutoRequest {
	return service.AutoRequest{Title: r.Title, Language: r.Language, Region: r.Region}
}

func (r autoRequest) byID() (service.AutoRequest, error) {
	if r.ID == "" {
		return service.AutoRequest{}, utils.NewValidationError("TMDB id is required")
	}
	return service.AutoRequest{TMDBID: r.ID, Language: r.Language}, nil
}

// Controller holds the handlers shared by movies and series.
type Controller[E any, PE models.Entity[E], P any, PP models.Popularity[P]] struct {
	svc *service.Service[E, PE, P, PP]
}

func (h *Controller[E, PE, P, PP]) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Controller[E, PE, P, PP]) GetByID(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Controller[E, PE, P, PP]) GetBySlug(c *gin.Context) {
	res, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Controller[E, PE, P, PP]) Search(c *gin.Context) {
	res, err := h.svc.Search(c.Request.Context(), c.Param("keyword"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Controller[E, PE, P, PP]) SearchByTag(c *gin.Context) {
	res, err := h.svc.SearchByTag(c.Request.Context(), c.Param("tag"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Controller[E, PE, P, PP]) Popular(c *gin.Context) {
	res, err := h.svc.Popular(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Controller[E, PE, P, PP]) Watch(c *gin.Context) {
	res, err := h.svc.Watch(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Controller[E, PE, P, PP]) UpdateTitle(c *gin.Context) {
	var req titleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.svc.UpdateTitle(c.Request.Context(), c.Param("id"), req.Title)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Controller[E, PE, P, PP]) UpdateImage(c *gin.Context) {
	upload, err := imageUpload(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	res, err := h.svc.UpdateImage(c.Request.Context(), c.Param("id"), upload)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Delete reads the id from the route's first parameter so it serves both
// /:movieId and /:seriesId.
func (h *Controller[E, PE, P, PP]) Delete(c *gin.Context) {
	id := ""
	if len(c.Params) > 0 {
		id = c.Params[0].Value
	}

	res, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// imageUpload reads the optional "image" form file. A missing file yields a
// nil upload, which the service rejects after its existence check.
func imageUpload(c *gin.Context) (*media.Upload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	upload, err := media.FromFileHeader(fh)
	if err != nil {
		return nil, utils.NewValidationError(err.Error())
	}
	return upload, nil
}

func createInput(c *gin.Context) (service.CreateInput, error) {
	upload, err := imageUpload(c)
	if err != nil {
		return service.CreateInput{}, err
	}
	return service.CreateInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Tags:        c.PostForm("tags"),
		ReleaseDate: c.PostForm("releaseDate"),
		Movie:       c.PostForm("movie"),
		Episode:     c.PostForm("episode"),
		Image:       upload,
	}, nil
}
