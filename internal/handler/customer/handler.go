package customer

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/internal/handler"
	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/service/customer"
)

type Handler struct {
	svc *customer.Service
}

func NewHandler(svc *customer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	customers := r.Group("/customers")
	{
		customers.GET("", h.ListCustomers)
		customers.GET("/by-phone/:phone", h.GetCustomerByPhone)
		customers.DELETE("/:id", h.DeleteCustomer)
	}
}

func (h *Handler) ListCustomers(c *gin.Context) {
	filters := &model.CustomerFilters{
		SearchTerm: c.Query("search"),
	}
	filters.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filters.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "50"))

	customers, err := h.svc.List(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(customers))
}

func (h *Handler) GetCustomerByPhone(c *gin.Context) {
	customer, err := h.svc.GetByPhone(c.Request.Context(), c.Param("phone"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(customer))
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid customer ID"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
