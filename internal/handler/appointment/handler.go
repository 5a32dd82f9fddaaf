package appointment

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/handler"
	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/service/booking"
)

// Handler exposes the admin appointment operations: listing, status
// transitions and deletion of cancelled records.
type Handler struct {
	svc *booking.Service
}

func NewHandler(svc *booking.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.POST("", h.CreateAppointment)
		appointments.GET("/:id", h.GetAppointment)
		appointments.POST("/:id/confirm", h.ConfirmAppointment)
		appointments.POST("/:id/complete", h.CompleteAppointment)
		appointments.POST("/:id/cancel", h.CancelAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

func (h *Handler) ListAppointments(c *gin.Context) {
	filters := &model.AppointmentFilters{
		Date: c.Query("date"),
	}

	if id := c.Query("staff_id"); id != "" {
		staffID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid staff ID"))
			return
		}
		filters.StaffID = staffID
	}

	if status := c.Query("status"); status != "" {
		s := model.AppointmentStatus(status)
		if !s.Valid() {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid status"))
			return
		}
		filters.Status = s
	}

	appointments, err := h.svc.List(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

// CreateAppointment books on behalf of a walk-in or phone customer. It
// runs through the same orchestrator as the public endpoint, so slot
// and conflict rules apply equally.
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if req.Source == "" {
		req.Source = model.AppointmentSourceAdmin
	}

	appointment, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(appointment))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	appointment, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointment))
}

func (h *Handler) ConfirmAppointment(c *gin.Context) {
	h.transition(c, h.svc.Confirm)
}

func (h *Handler) CompleteAppointment(c *gin.Context) {
	h.transition(c, h.svc.Complete)
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	h.transition(c, h.svc.Cancel)
}

func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	if err := fn(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	appointment, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointment))
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
