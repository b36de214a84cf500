// This file implements partner account management and show↔partner
// association endpoints. All of them are admin-only except the self-service
// listing, which resolves the calling partner from the request context.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/evergreenmedia/podcast-api/internal/config"
	"github.com/evergreenmedia/podcast-api/internal/middleware"
	"github.com/evergreenmedia/podcast-api/internal/queue"
	"github.com/evergreenmedia/podcast-api/internal/repository"
	"github.com/evergreenmedia/podcast-api/internal/service"
	"github.com/evergreenmedia/podcast-api/internal/utils"
)

// PartnerHandler bundles dependencies for partner endpoints.
type PartnerHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Partners *repository.PartnerRepo
	Events   *service.EventPublisher
}

func NewPartnerHandler(cfg config.Config, u *repository.UserRepo, p *repository.PartnerRepo, ev *service.EventPublisher) *PartnerHandler {
	return &PartnerHandler{Cfg: cfg, Users: u, Partners: p, Events: ev}
}

type partnerCreateReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordUpdateReq struct {
	Password string `json:"password"`
}

// CreatePartner handles POST /v1/partners: it creates a user with role
// partner together with its partner record.
func (h *PartnerHandler) CreatePartner(c echo.Context) error {
	var req partnerCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/password required"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Partners.CreatePartner(ctx, req.Name, req.Email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create partner failed"})
	}

	_ = h.Events.Publish(ctx, queue.CatalogEvent{
		Kind: queue.EventPartnerCreated, UserID: u.ID, ActorEmail: actorEmail(c),
	})
	return c.JSON(http.StatusCreated, u)
}

// UpdatePassword handles PUT /v1/partners/:id/password. The id is the user
// id of the partner account.
func (h *PartnerHandler) UpdatePassword(c echo.Context) error {
	var req passwordUpdateReq
	if err := c.Bind(&req); err != nil || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password required"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdatePassword(ctx, c.Param("id"), hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	// Previously issued tokens stay valid until their expiry; there is no
	// revocation list.
	return c.NoContent(http.StatusNoContent)
}

// DeleteUser handles DELETE /v1/users/:id. Show associations belonging to
// the user's partner record are removed first so no orphans remain.
func (h *PartnerHandler) DeleteUser(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}

	_ = h.Events.Publish(ctx, queue.CatalogEvent{
		Kind: queue.EventUserDeleted, UserID: id, ActorEmail: actorEmail(c),
	})
	return c.NoContent(http.StatusNoContent)
}

// Associate handles POST /v1/podcasts/:show_id/partners/:partner_id.
func (h *PartnerHandler) Associate(c echo.Context) error {
	showID, partnerID := c.Param("show_id"), c.Param("partner_id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sp, err := h.Partners.Associate(ctx, showID, partnerID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "association already exists"})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show or partner not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "associate failed"})
		}
	}

	_ = h.Events.Publish(ctx, queue.CatalogEvent{
		Kind: queue.EventPartnerAssociated, ShowID: showID, PartnerID: partnerID,
		ActorEmail: actorEmail(c),
	})
	return c.JSON(http.StatusCreated, sp)
}

// Unassociate handles DELETE /v1/podcasts/:show_id/partners/:partner_id.
func (h *PartnerHandler) Unassociate(c echo.Context) error {
	showID, partnerID := c.Param("show_id"), c.Param("partner_id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Partners.Unassociate(ctx, showID, partnerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "association not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unassociate failed"})
	}

	_ = h.Events.Publish(ctx, queue.CatalogEvent{
		Kind: queue.EventPartnerDissociated, ShowID: showID, PartnerID: partnerID,
		ActorEmail: actorEmail(c),
	})
	return c.NoContent(http.StatusNoContent)
}

// PartnerShows handles GET /v1/partners/:id/podcasts (admin view of one
// partner's catalog).
func (h *PartnerHandler) PartnerShows(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Surface a 404 for an unknown partner rather than an empty list.
	if _, err := h.Partners.GetByID(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "partner not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	shows, err := h.Partners.ShowsForPartner(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, shows)
}

// MyShows handles GET /v1/partners/me/podcasts: the authenticated partner's
// own catalog.
func (h *PartnerHandler) MyShows(c echo.Context) error {
	u := middleware.CurrentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Partners.GetByUserID(ctx, u.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "partner record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	shows, err := h.Partners.ShowsForPartner(ctx, p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, shows)
}
