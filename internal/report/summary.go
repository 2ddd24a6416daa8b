package report

import (
	"fmt"
	"strings"
	"time"

	"smartbook/internal/citytax"
	"smartbook/internal/model"
)

const summaryWidth = 60

// Property identifies the accommodation on municipal submissions.
type Property struct {
	Name         string `json:"name"`
	FacilityCode string `json:"facility_code"`
}

// TextSummary renders the plain-text report submitted to the municipality.
func TextSummary(r citytax.TaxReport, period Period, property Property, generatedAt time.Time) string {
	rule := strings.Repeat("=", summaryWidth)
	thin := strings.Repeat("-", summaryWidth)

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line(rule)
	line("IMPOSTA DI SOGGIORNO - REPORT %s", strings.ToUpper(string(period.Kind)))
	line(rule)
	line("")
	line("Struttura: %s", property.Name)
	line("Codice: %s", property.FacilityCode)
	line("")
	line("Periodo: %s", period.Label)
	line("")
	line("RIEPILOGO")
	line(thin)
	line("Prenotazioni totali: %d", r.TotalBookings)
	line("Ospiti totali: %d", r.TotalGuests)
	line("Ospiti soggetti a imposta: %d", r.TotalTaxableGuests())
	line("Ospiti esenti: %d", r.TotalExemptGuests)
	line("Pernottamenti tassati: %d", r.TotalTaxableNights)
	line("Pernottamenti esenti: %d", r.TotalExemptNights)
	line("")
	line("TOTALE IMPOSTA: %s", FormatEUR(r.TotalTax))
	line("Media per prenotazione: %s", FormatEUR(r.AverageTaxPerBooking))
	line("")
	line("DETTAGLIO ESENZIONI")
	line(thin)
	line("Minori: %d", r.ExemptionBreakdown[model.ExemptionAge])
	line("Autisti pullman: %d", r.ExemptionBreakdown[model.ExemptionBusDriverRatio])
	line("Guide turistiche: %d", r.ExemptionBreakdown[model.ExemptionTourGuide])
	line("")
	line(rule)
	line("Generato il: %s", generatedAt.Format(time.DateOnly))
	b.WriteString(rule)

	return b.String()
}
