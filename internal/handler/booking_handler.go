package handler

import (
	"net/http"

	"smartbook/internal/middleware"
	"smartbook/internal/model"
	"smartbook/internal/service"
	"smartbook/pkg/response"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService     service.BookingService
	calculationService service.TaxCalculationService
	auth               *middleware.Authenticator
}

func NewBookingHandler(bookingService service.BookingService, calculationService service.TaxCalculationService, auth *middleware.Authenticator) *BookingHandler {
	return &BookingHandler{
		bookingService:     bookingService,
		calculationService: calculationService,
		auth:               auth,
	}
}

func (h *BookingHandler) RegisterRoutes(router *gin.RouterGroup) {
	bookings := router.Group("/api/bookings")
	bookings.Use(h.auth.RequireRole(model.UserRoleAdmin, model.UserRoleManager, model.UserRoleStaff))
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/calculate-tax", h.CalculateTax)
		bookings.GET("/:id/tax-preview", h.PreviewTax)
		bookings.GET("/:id/tax", h.GetLatestTax)
	}
}

// CreateBooking registers a booking with its guests in entry order
// @Summary      Create booking
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateBookingRequest  true  "Booking with guests"
// @Success      201      {object}  response.Response{data=service.BookingResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), middleware.TenantID(c), req, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, booking))
}

// GetBooking returns a booking with its guests and their exemption flags
// @Summary      Get booking
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  response.Response{data=service.BookingResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingService.GetBooking(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, booking))
}

// CalculateTax prices the booking and stores the calculation
// @Summary      Calculate city tax
// @Description  Calculates the city tax of a booking with the rule valid at check-in, stores the result and flags exempt guests
// @Tags         tax
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      201  {object}  response.Response{data=service.TaxCalculationResponse}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/bookings/{id}/calculate-tax [post]
func (h *BookingHandler) CalculateTax(c *gin.Context) {
	result, err := h.calculationService.CalculateBookingTax(c.Request.Context(), middleware.TenantID(c), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// PreviewTax calculates without storing anything
// @Summary      Preview city tax
// @Tags         tax
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  response.Response{data=service.TaxCalculationResponse}
// @Failure      404  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/bookings/{id}/tax-preview [get]
func (h *BookingHandler) PreviewTax(c *gin.Context) {
	result, err := h.calculationService.PreviewBookingTax(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// GetLatestTax returns the most recent stored calculation of a booking
// @Summary      Latest city tax calculation
// @Tags         tax
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  response.Response{data=service.TaxCalculationResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/bookings/{id}/tax [get]
func (h *BookingHandler) GetLatestTax(c *gin.Context) {
	result, err := h.calculationService.GetLatestCalculation(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
