// This file implements the admin-facing podcast catalog endpoints: listing,
// filtering, creation, sparse update and deletion of shows.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/evergreenmedia/podcast-api/internal/model"
	"github.com/evergreenmedia/podcast-api/internal/queue"
	"github.com/evergreenmedia/podcast-api/internal/repository"
	"github.com/evergreenmedia/podcast-api/internal/service"
)

// ShowHandler bundles dependencies for podcast catalog endpoints.
type ShowHandler struct {
	Shows  *repository.ShowRepo
	Events *service.EventPublisher
}

func NewShowHandler(s *repository.ShowRepo, ev *service.EventPublisher) *ShowHandler {
	return &ShowHandler{Shows: s, Events: ev}
}

// validateShowAttrs checks enum vocabulary and date formats on whatever
// fields are present. It is shared by create and update.
func validateShowAttrs(a *model.ShowAttrs) error {
	if a.MediaType != nil && !model.MediaTypes[*a.MediaType] {
		return fmt.Errorf("invalid media_type %q", *a.MediaType)
	}
	if a.RelationshipLevel != nil && !model.RelationshipLevels[*a.RelationshipLevel] {
		return fmt.Errorf("invalid relationship_level %q", *a.RelationshipLevel)
	}
	if a.ShowType != nil && !model.ShowTypes[*a.ShowType] {
		return fmt.Errorf("invalid show_type %q", *a.ShowType)
	}
	if a.StartDate != nil {
		if _, err := time.Parse("2006-01-02", *a.StartDate); err != nil {
			return fmt.Errorf("invalid start_date %q, want YYYY-MM-DD", *a.StartDate)
		}
	}
	return nil
}

// ListShows handles GET /v1/podcasts and returns the whole catalog.
func (h *ShowHandler) ListShows(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	shows, err := h.Shows.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, shows)
}

// FilterShows handles GET /v1/podcasts/filter. Each supported query
// parameter becomes an equality predicate; parameters left out do not
// filter, so no parameters at all returns the full catalog.
func (h *ShowHandler) FilterShows(c echo.Context) error {
	var f model.ShowFilter
	str := func(name string) *string {
		if v := c.QueryParam(name); v != "" {
			return &v
		}
		return nil
	}
	f.Title = str("title")
	f.MediaType = str("media_type")
	f.ShowType = str("show_type")
	f.RelationshipLevel = str("relationship_level")
	f.GenreID = str("genre_id")
	f.SubnetworkID = str("subnetwork_id")
	for name, dst := range map[string]**bool{"tentpole": &f.Tentpole, "is_original": &f.IsOriginal} {
		if v := c.QueryParam(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid boolean for " + name})
			}
			*dst = &b
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	shows, err := h.Shows.Filter(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, shows)
}

// GetShow handles GET /v1/podcasts/:id.
func (h *ShowHandler) GetShow(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sh, err := h.Shows.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "podcast not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, sh)
}

// CreateShow handles POST /v1/podcasts. Title is the only required field;
// everything else takes the column default when omitted.
func (h *ShowHandler) CreateShow(c echo.Context) error {
	var attrs model.ShowAttrs
	if err := c.Bind(&attrs); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if attrs.Title == nil || strings.TrimSpace(*attrs.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if err := validateShowAttrs(&attrs); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sh, err := h.Shows.Create(ctx, &attrs)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "conflicting show data"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}

	_ = h.Events.Publish(ctx, queue.CatalogEvent{
		Kind: queue.EventShowCreated, ShowID: sh.ID, ShowTitle: deref(sh.Title),
		ActorEmail: actorEmail(c),
	})
	return c.JSON(http.StatusCreated, sh)
}

// UpdateShow handles PUT /v1/podcasts/:id. Only fields present in the body
// are written; a body with no known fields is rejected before any statement
// runs.
func (h *ShowHandler) UpdateShow(c echo.Context) error {
	var patch model.ShowAttrs
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validateShowAttrs(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sh, err := h.Shows.Update(ctx, c.Param("id"), &patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoUpdateData):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no update data provided"})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "podcast not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "conflicting show data"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}

	_ = h.Events.Publish(ctx, queue.CatalogEvent{
		Kind: queue.EventShowUpdated, ShowID: sh.ID, ShowTitle: deref(sh.Title),
		ActorEmail: actorEmail(c),
	})
	return c.JSON(http.StatusOK, sh)
}

// DeleteShow handles DELETE /v1/podcasts/:id.
func (h *ShowHandler) DeleteShow(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Shows.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "podcast not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "podcast still has associations"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}

	_ = h.Events.Publish(ctx, queue.CatalogEvent{
		Kind: queue.EventShowDeleted, ShowID: id, ActorEmail: actorEmail(c),
	})
	return c.NoContent(http.StatusNoContent)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
