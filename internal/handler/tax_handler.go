package handler

import (
	"net/http"

	"smartbook/internal/middleware"
	"smartbook/internal/model"
	"smartbook/internal/service"
	"smartbook/pkg/pagination"
	"smartbook/pkg/response"

	"github.com/gin-gonic/gin"
)

type TaxRuleHandler struct {
	taxRuleService service.TaxRuleService
	auth           *middleware.Authenticator
}

func NewTaxRuleHandler(taxRuleService service.TaxRuleService, auth *middleware.Authenticator) *TaxRuleHandler {
	return &TaxRuleHandler{taxRuleService: taxRuleService, auth: auth}
}

func (h *TaxRuleHandler) RegisterRoutes(router *gin.RouterGroup) {
	rules := router.Group("/api/tax-rules")
	rules.Use(h.auth.RequireRole(model.UserRoleAdmin, model.UserRoleManager, model.UserRoleStaff))
	{
		rules.GET("", h.ListTaxRules)
		rules.GET("/:id", h.GetTaxRule)
	}

	manage := router.Group("/api/tax-rules")
	manage.Use(h.auth.RequireRole(model.UserRoleAdmin, model.UserRoleManager))
	{
		manage.POST("", h.CreateTaxRule)
		manage.PUT("/:id", h.UpdateTaxRule)
		manage.DELETE("/:id", h.DeleteTaxRule)
	}
}

// ListTaxRules returns the tenant's rules, newest validity window first
// @Summary      List tax rules
// @Description  Retrieves the city tax rules of the caller's property, newest first
// @Tags         tax-rules
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=response.Page[service.TaxRuleResponse]}
// @Failure      500    {object}  response.Response
// @Router       /api/tax-rules [get]
func (h *TaxRuleHandler) ListTaxRules(c *gin.Context) {
	p := pagination.Parse(c)

	rules, total, err := h.taxRuleService.ListTaxRules(c.Request.Context(), middleware.TenantID(c), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	pagination.Respond(c, p, rules, total)
}

// GetTaxRule returns one rule with its configuration warnings
// @Summary      Get tax rule
// @Tags         tax-rules
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Tax rule ID"
// @Success      200  {object}  response.Response{data=service.TaxRuleResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/tax-rules/{id} [get]
func (h *TaxRuleHandler) GetTaxRule(c *gin.Context) {
	rule, err := h.taxRuleService.GetTaxRule(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rule))
}

// CreateTaxRule creates a new tax rule version
// @Summary      Create tax rule
// @Description  Creates a city tax rule. Validity windows of one property may not overlap.
// @Tags         tax-rules
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.TaxRuleRequest  true  "Tax rule"
// @Success      201      {object}  response.Response{data=service.TaxRuleResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/tax-rules [post]
func (h *TaxRuleHandler) CreateTaxRule(c *gin.Context) {
	var req service.TaxRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rule, err := h.taxRuleService.CreateTaxRule(c.Request.Context(), middleware.TenantID(c), req, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rule))
}

// UpdateTaxRule replaces a rule that has not priced any stored calculation
// @Summary      Update tax rule
// @Tags         tax-rules
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Tax rule ID"
// @Param        payload  body      service.TaxRuleRequest  true  "Tax rule"
// @Success      200      {object}  response.Response{data=service.TaxRuleResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/tax-rules/{id} [put]
func (h *TaxRuleHandler) UpdateTaxRule(c *gin.Context) {
	var req service.TaxRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rule, err := h.taxRuleService.UpdateTaxRule(c.Request.Context(), middleware.TenantID(c), c.Param("id"), req, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rule))
}

// DeleteTaxRule removes a rule that has not priced any stored calculation
// @Summary      Delete tax rule
// @Tags         tax-rules
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Tax rule ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/tax-rules/{id} [delete]
func (h *TaxRuleHandler) DeleteTaxRule(c *gin.Context) {
	if err := h.taxRuleService.DeleteTaxRule(c.Request.Context(), middleware.TenantID(c), c.Param("id"), middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Tax rule deleted"))
}
