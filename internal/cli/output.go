package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"smartbook/internal/citytax"
	"smartbook/internal/model"
	"smartbook/internal/report"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var headingStyle = lipgloss.NewStyle().Bold(true)

var warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

var (
	headerCellStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
)

// printBreakdown writes one booking's per-guest tax table
func printBreakdown(w io.Writer, result *citytax.BookingTaxResult) {
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Booking %s  %s → %s  (%d nights)",
		result.BookingID,
		result.CheckInDate.Format(citytax.DateLayout),
		result.CheckOutDate.Format(citytax.DateLayout),
		result.Nights,
	)))

	rows := make([][]string, 0, len(result.GuestBreakdown))
	for _, g := range result.GuestBreakdown {
		reason := "-"
		if g.ExemptionReason != nil {
			reason = exemptionLabel(*g.ExemptionReason)
		}
		rows = append(rows, []string{
			g.GuestName,
			string(g.Role),
			strconv.Itoa(g.TaxableNights),
			strconv.Itoa(g.ExemptNights),
			report.FormatEUR(g.TaxAmount),
			reason,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("GUEST", "ROLE", "TAXABLE", "EXEMPT", "TAX", "EXEMPTION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.String())

	fmt.Fprintf(w, "Rate: %s per person per night\n", report.FormatEUR(result.BaseRatePerNight))
	fmt.Fprintf(w, "Taxable nights: %d  Exempt nights: %d\n", result.TotalTaxableNights, result.TotalExemptNights)
	fmt.Fprintln(w, headingStyle.Render("Total: "+report.FormatEUR(result.TotalTax)))
	printWarnings(w, result.Warnings)
}

func printWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintln(w, warningStyle.Render("warning: "+warning))
	}
}

func exemptionLabel(reason model.ExemptionReason) string {
	switch reason {
	case model.ExemptionAge:
		return "minore"
	case model.ExemptionBusDriverRatio:
		return "autista"
	case model.ExemptionTourGuide:
		return "guida turistica"
	default:
		return strings.ReplaceAll(string(reason), "_", " ")
	}
}
