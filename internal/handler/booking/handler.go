package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/handler"
	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/service/availability"
	"github.com/jwalitptl/salon-api/internal/service/booking"
)

// Handler serves the public booking surface: slot discovery and
// appointment creation. Everything else about appointments lives
// behind the admin group.
type Handler struct {
	bookingSvc      *booking.Service
	availabilitySvc *availability.Service
}

func NewHandler(bookingSvc *booking.Service, availabilitySvc *availability.Service) *Handler {
	return &Handler{
		bookingSvc:      bookingSvc,
		availabilitySvc: availabilitySvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/slots", h.GetAvailableSlots)
	r.POST("/bookings", h.CreateBooking)
}

func (h *Handler) GetAvailableSlots(c *gin.Context) {
	staffID, err := uuid.Parse(c.Query("staff_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid staff ID"))
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("date is required"))
		return
	}

	slots, err := h.availabilitySvc.GetAvailableSlots(c.Request.Context(), staffID, date)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"date":  date,
		"slots": slots,
	}))
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if req.Source == "" {
		req.Source = model.AppointmentSourceOnline
	}

	appointment, err := h.bookingSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(appointment))
}
