package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipehub/recipehub-backend/internal/app/service"
	apperrors "github.com/recipehub/recipehub-backend/internal/errors"
	"github.com/recipehub/recipehub-backend/internal/middleware"
)

type TagController struct {
	tagService service.TagService
}

func NewTagController(tagService service.TagService) *TagController {
	return &TagController{
		tagService: tagService,
	}
}

// GetTags lists every tag
// GET /api/v1/tags
func (ctrl *TagController) GetTags(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tags, err := ctrl.tagService.GetTags()
	if err != nil {
		log.Error("Failed to fetch tags", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch tags")
		return
	}

	c.JSON(http.StatusOK, tags)
}

// GetTag returns one tag
// GET /api/v1/tags/:id
func (ctrl *TagController) GetTag(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid tag ID")
		return
	}

	tag, err := ctrl.tagService.GetTag(id)
	if err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			apperrors.NotFound(c, apperrors.TagNotFound, "Tag not found")
			return
		}
		log.Error("Failed to fetch tag", err, map[string]interface{}{
			"tag_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch tag")
		return
	}

	c.JSON(http.StatusOK, tag)
}
