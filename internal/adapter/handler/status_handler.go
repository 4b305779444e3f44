// Package handler exposes the agent's local status API: a read-only view
// of the lifecycle state plus the online toggle, for dashboards and
// scripts on the same machine.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/the-devesta/khaaonow-delivery/internal/core/domain"
	"github.com/the-devesta/khaaonow-delivery/internal/core/service"
	"github.com/the-devesta/khaaonow-delivery/internal/core/service/location"
)

type StatusHandler struct {
	store    *service.Lifecycle
	partner  *service.PartnerService
	reporter *location.Reporter
}

func NewStatusHandler(store *service.Lifecycle, partner *service.PartnerService, reporter *location.Reporter) *StatusHandler {
	return &StatusHandler{store: store, partner: partner, reporter: reporter}
}

func (h *StatusHandler) Register(r *gin.Engine, env string) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "env": env})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/status", h.Status)
		api.POST("/online", h.SetOnline)
		api.GET("/dashboard", h.Dashboard)
	}
}

func (h *StatusHandler) Status(c *gin.Context) {
	snap := h.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"tracking": h.reporter.Tracking(),
		"state":    snap,
	})
}

type SetOnlineRequest struct {
	Online *bool `json:"online" binding:"required"`
}

// SetOnline toggles shift status on the backend and drives the location
// reporter to match whatever state the backend settled on.
func (h *StatusHandler) SetOnline(c *gin.Context) {
	var req SetOnlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active, err := h.partner.SetOnline(c.Request.Context(), *req.Online)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": domain.UserMessage(err)})
		return
	}

	h.reporter.SetOnline(active)
	c.JSON(http.StatusOK, gin.H{"online": active})
}

func (h *StatusHandler) Dashboard(c *gin.Context) {
	dash, err := h.partner.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": domain.UserMessage(err)})
		return
	}
	c.JSON(http.StatusOK, dash)
}
