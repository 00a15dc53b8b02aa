package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/i18n"
)

// deleteByID is shared by every DELETE /{entity}/{id} route. Nothing deleted is a 404.
func deleteByID(c *gin.Context, del func(context.Context, int64) (bool, error)) {
	builder := NewResponseBuilder(c)
	id, ok := parseID(c, builder)
	if !ok {
		return
	}

	deleted, err := del(c.Request.Context(), id)
	if err != nil {
		writeServiceError(builder, err)
		return
	}
	if !deleted {
		builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, fmt.Errorf("id %d does not exist", id))
		return
	}
	builder.SuccessOK(dto.DeleteResponse{ID: id, Deleted: true})
}
