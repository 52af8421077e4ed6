package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pixelforge-studio/studio-api/internal/modules/serializer"
	"github.com/pixelforge-studio/studio-api/internal/modules/service"
	"github.com/pixelforge-studio/studio-api/internal/pkg/accesscode"
	"github.com/pixelforge-studio/studio-api/internal/pkg/paging"
)

// respondErr maps service errors onto the HTTP error taxonomy: invalid input
// is 400, failed authentication 401, missing or unowned records 404, stale
// revisions 409, everything else an opaque 500.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAccessCode):
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("invalid access code"))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(""))
	case errors.Is(err, service.ErrStaleRevision):
		c.JSON(http.StatusConflict, serializer.ConflictErr("", err))
	case errors.Is(err, service.ErrPaidExceedsTotal),
		errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, accesscode.ErrTooShort),
		errors.Is(err, paging.ErrInvalidCursor):
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), nil))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}
