package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/service"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
	"github.com/noah-isme/campus-timetable-api/pkg/response"
)

// SlotHandler exposes weekly slot and blackout window endpoints.
type SlotHandler struct {
	catalog *service.CatalogService
}

// NewSlotHandler constructs SlotHandler.
func NewSlotHandler(catalog *service.CatalogService) *SlotHandler {
	return &SlotHandler{catalog: catalog}
}

// List godoc
// @Summary List weekly slots
// @Tags Slots
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /slots [get]
func (h *SlotHandler) List(c *gin.Context) {
	slots, err := h.catalog.ListSlots(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// Create godoc
// @Summary Create weekly slot
// @Tags Slots
// @Accept json
// @Produce json
// @Param payload body dto.SlotRequest true "Slot payload"
// @Success 201 {object} response.Envelope
// @Router /slots [post]
func (h *SlotHandler) Create(c *gin.Context) {
	var req dto.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	slot, err := h.catalog.CreateSlot(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// Update godoc
// @Summary Update weekly slot
// @Tags Slots
// @Accept json
// @Produce json
// @Param id path string true "Slot ID"
// @Param payload body dto.SlotRequest true "Slot payload"
// @Success 200 {object} response.Envelope
// @Router /slots/{id} [put]
func (h *SlotHandler) Update(c *gin.Context) {
	var req dto.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	slot, err := h.catalog.UpdateSlot(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// Delete godoc
// @Summary Delete weekly slot
// @Tags Slots
// @Produce json
// @Param id path string true "Slot ID"
// @Success 204
// @Router /slots/{id} [delete]
func (h *SlotHandler) Delete(c *gin.Context) {
	if err := h.catalog.DeleteSlot(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Blackouts godoc
// @Summary List blackout windows
// @Tags Slots
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /blackouts [get]
func (h *SlotHandler) Blackouts(c *gin.Context) {
	blackouts, err := h.catalog.ListBlackouts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, blackouts, nil)
}

// CreateBlackout godoc
// @Summary Create blackout window
// @Tags Slots
// @Accept json
// @Produce json
// @Param payload body dto.AvailabilityRequest true "Blackout window"
// @Success 201 {object} response.Envelope
// @Router /blackouts [post]
func (h *SlotHandler) CreateBlackout(c *gin.Context) {
	var req dto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	blackout, err := h.catalog.CreateBlackout(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, blackout)
}

// DeleteBlackout godoc
// @Summary Delete blackout window
// @Tags Slots
// @Produce json
// @Param id path string true "Blackout ID"
// @Success 204
// @Router /blackouts/{id} [delete]
func (h *SlotHandler) DeleteBlackout(c *gin.Context) {
	if err := h.catalog.DeleteBlackout(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
