package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"smartbook/internal/citytax"
	ierr "smartbook/internal/errors"
	"smartbook/internal/middleware"
	"smartbook/internal/model"
	"smartbook/internal/report"
	"smartbook/internal/service"
	"smartbook/pkg/response"

	"github.com/gin-gonic/gin"
)

// Report output formats
const (
	formatJSON = "json"
	formatCSV  = "csv"
	formatText = "text"
)

type TaxReportHandler struct {
	reportService service.TaxReportService
	auth          *middleware.Authenticator
}

func NewTaxReportHandler(reportService service.TaxReportService, auth *middleware.Authenticator) *TaxReportHandler {
	return &TaxReportHandler{reportService: reportService, auth: auth}
}

func (h *TaxReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/tax/reports")
	reports.Use(h.auth.RequireRole(model.UserRoleAdmin, model.UserRoleManager))
	{
		reports.GET("/monthly", h.MonthlyReport)
		reports.GET("/quarterly", h.QuarterlyReport)
		reports.GET("/range", h.RangeReport)
	}
}

// MonthlyReport aggregates the city tax of every check-in in a month
// @Summary      Monthly city tax report
// @Tags         tax-reports
// @Security     BearerAuth
// @Produce      json,text/csv,text/plain
// @Param        year    query     int     true   "Year"
// @Param        month   query     int     true   "Month 1-12"
// @Param        format  query     string  false  "json (default), csv or text"
// @Success      200     {object}  response.Response{data=service.TaxReportResponse}
// @Failure      400     {object}  response.Response
// @Failure      422     {object}  response.Response
// @Router       /api/tax/reports/monthly [get]
func (h *TaxReportHandler) MonthlyReport(c *gin.Context) {
	format, err := reportFormat(c)
	if err != nil {
		respondError(c, err)
		return
	}
	year, err := intQuery(c, "year")
	if err != nil {
		respondError(c, err)
		return
	}
	month, err := intQuery(c, "month")
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.reportService.MonthlyReport(c.Request.Context(), middleware.TenantID(c), year, month, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	render(c, format, resp)
}

// QuarterlyReport aggregates the city tax of every check-in in a quarter
// @Summary      Quarterly city tax report
// @Tags         tax-reports
// @Security     BearerAuth
// @Produce      json,text/csv,text/plain
// @Param        year     query     int     true   "Year"
// @Param        quarter  query     int     true   "Quarter 1-4"
// @Param        format   query     string  false  "json (default), csv or text"
// @Success      200      {object}  response.Response{data=service.TaxReportResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/tax/reports/quarterly [get]
func (h *TaxReportHandler) QuarterlyReport(c *gin.Context) {
	format, err := reportFormat(c)
	if err != nil {
		respondError(c, err)
		return
	}
	year, err := intQuery(c, "year")
	if err != nil {
		respondError(c, err)
		return
	}
	quarter, err := intQuery(c, "quarter")
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.reportService.QuarterlyReport(c.Request.Context(), middleware.TenantID(c), year, quarter, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	render(c, format, resp)
}

// RangeReport aggregates the city tax of every check-in between two dates, both inclusive
// @Summary      City tax report for a date range
// @Tags         tax-reports
// @Security     BearerAuth
// @Produce      json,text/csv,text/plain
// @Param        from    query     string  true   "First check-in date (YYYY-MM-DD)"
// @Param        to      query     string  true   "Last check-in date (YYYY-MM-DD)"
// @Param        label   query     string  false  "Period label printed on the report"
// @Param        format  query     string  false  "json (default), csv or text"
// @Success      200     {object}  response.Response{data=service.TaxReportResponse}
// @Failure      400     {object}  response.Response
// @Failure      422     {object}  response.Response
// @Router       /api/tax/reports/range [get]
func (h *TaxReportHandler) RangeReport(c *gin.Context) {
	format, err := reportFormat(c)
	if err != nil {
		respondError(c, err)
		return
	}
	from, err := citytax.ParseDate(c.Query("from"))
	if err != nil {
		respondError(c, err)
		return
	}
	to, err := citytax.ParseDate(c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	period, err := report.CustomPeriod(from, to, c.Query("label"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.reportService.RangeReport(c.Request.Context(), middleware.TenantID(c), period, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	render(c, format, resp)
}

func reportFormat(c *gin.Context) (string, error) {
	switch format := c.DefaultQuery("format", formatJSON); format {
	case formatJSON, formatCSV, formatText:
		return format, nil
	default:
		return "", ierr.NewErrorf("unsupported format %q", format).
			WithHint("format must be json, csv or text").
			Mark(ierr.ErrValidation)
	}
}

func render(c *gin.Context, format string, resp *service.TaxReportResponse) {
	switch format {
	case formatText:
		c.String(http.StatusOK, report.TextSummary(resp.Summary, resp.Period, resp.Property, resp.GeneratedAt))
	case formatCSV:
		var buf bytes.Buffer
		if err := report.WriteCSV(&buf, resp.Bookings); err != nil {
			respondError(c, err)
			return
		}
		filename := fmt.Sprintf("imposta-soggiorno-%s-%s.csv", resp.Period.Kind, resp.Period.From.Format("2006-01"))
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	default:
		c.JSON(http.StatusOK, response.Success(http.StatusOK, resp))
	}
}

func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHintf("Query parameter %s must be an integer", name).
			WithReportableDetails(map[string]any{name: raw}).
			Mark(ierr.ErrValidation)
	}
	return value, nil
}
