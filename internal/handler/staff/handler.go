package staff

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/handler"
	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/service/staff"
)

type Handler struct {
	svc staff.StaffServicer
}

func NewHandler(svc staff.StaffServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	staff := r.Group("/staff")
	{
		staff.GET("", h.ListStaff)
		staff.POST("", h.CreateStaff)
		staff.GET("/:id", h.GetStaff)
		staff.PUT("/:id", h.UpdateStaff)
		staff.DELETE("/:id", h.DeleteStaff)
		staff.GET("/:id/availability", h.GetAvailability)
		staff.PUT("/:id/availability", h.UpdateAvailability)
	}
}

func (h *Handler) ListStaff(c *gin.Context) {
	members, err := h.svc.ListStaff(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(members))
}

func (h *Handler) CreateStaff(c *gin.Context) {
	var req model.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	member := &model.Staff{
		Name:      req.Name,
		Specialty: req.Specialty,
		Avatar:    req.Avatar,
	}
	if err := h.svc.CreateStaff(c.Request.Context(), member); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(member))
}

func (h *Handler) GetStaff(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid staff ID"))
		return
	}

	member, err := h.svc.GetStaff(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(member))
}

func (h *Handler) UpdateStaff(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid staff ID"))
		return
	}

	var req model.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	member, err := h.svc.GetStaff(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Specialty != nil {
		member.Specialty = *req.Specialty
	}
	if req.Avatar != nil {
		member.Avatar = *req.Avatar
	}

	if err := h.svc.UpdateStaff(c.Request.Context(), member); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(member))
}

func (h *Handler) DeleteStaff(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid staff ID"))
		return
	}

	if err := h.svc.DeleteStaff(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) GetAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid staff ID"))
		return
	}

	availability, err := h.svc.GetAvailability(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(availability))
}

func (h *Handler) UpdateAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid staff ID"))
		return
	}

	var req model.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	availability := &model.Availability{
		StaffID:     id,
		WorkingDays: req.WorkingDays,
		WorkStart:   req.WorkStart,
		WorkEnd:     req.WorkEnd,
		OffDays:     req.OffDays,
		IsActive:    req.IsActive,
	}
	if err := h.svc.UpdateAvailability(c.Request.Context(), availability); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(availability))
}
