package cli

import (
	"encoding/json"
	"slices"
	"time"

	"smartbook/internal/citytax"
	ierr "smartbook/internal/errors"
	"smartbook/internal/report"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatCSV  = "csv"
	formatJSON = "json"
)

type reportOptions struct {
	file         string
	period       string
	month        string
	format       string
	property     string
	facilityCode string
}

func newReportCmd() *cobra.Command {
	opts := reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate the city tax of several bookings into a municipality report",
		Example: `  taxctl report -f bookings.yaml --period "Gennaio 2025"
  taxctl report -f bookings.yaml --month 2025-01 --format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML file with rules and bookings")
	cmd.Flags().StringVar(&opts.period, "period", "", "period label printed on the report")
	cmd.Flags().StringVar(&opts.month, "month", "", "only include check-ins of this month (YYYY-MM)")
	cmd.Flags().StringVar(&opts.format, "format", formatText, "output format: text, csv or json")
	cmd.Flags().StringVar(&opts.property, "property", "", "property name printed on the report")
	cmd.Flags().StringVar(&opts.facilityCode, "facility-code", "", "facility code printed on the report")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runReport(cmd *cobra.Command, opts reportOptions) error {
	if !slices.Contains([]string{formatText, formatCSV, formatJSON}, opts.format) {
		return ierr.NewErrorf("unsupported format %q", opts.format).
			WithHint("format must be text, csv or json").
			Mark(ierr.ErrValidation)
	}

	doc, err := LoadDocument(opts.file)
	if err != nil {
		return err
	}

	bookings := doc.AllBookings()
	checkIns := make([]time.Time, len(bookings))
	for i, b := range bookings {
		if checkIns[i], err = citytax.ParseDate(b.CheckIn); err != nil {
			return err
		}
	}

	period, err := reportPeriod(opts, checkIns)
	if err != nil {
		return err
	}

	// only bookings checking in within the period are priced
	inPeriod := lo.Filter(bookings, func(_ BookingDoc, i int) bool {
		return !checkIns[i].Before(period.From) && !checkIns[i].After(period.To)
	})
	results, err := calculateBookings(doc, inPeriod)
	if err != nil {
		return err
	}
	summary := citytax.GenerateReport(results, period.Label)

	out := cmd.OutOrStdout()
	switch opts.format {
	case formatCSV:
		return report.WriteCSV(out, results)
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	default:
		property := report.Property{Name: opts.property, FacilityCode: opts.facilityCode}
		cmd.Println(report.TextSummary(summary, period, property, time.Now()))
		return nil
	}
}

// reportPeriod is the --month period when given, otherwise the range spanned
// by the bookings' check-in dates
func reportPeriod(opts reportOptions, checkIns []time.Time) (report.Period, error) {
	if opts.month != "" {
		month, err := time.Parse("2006-01", opts.month)
		if err != nil {
			return report.Period{}, ierr.WithError(err).
				WithHintf("month %q must be YYYY-MM", opts.month).
				Mark(ierr.ErrValidation)
		}
		period, err := report.MonthlyPeriod(month.Year(), month.Month())
		if err != nil {
			return report.Period{}, err
		}
		if opts.period != "" {
			period.Label = opts.period
		}
		return period, nil
	}

	if len(checkIns) == 0 {
		return report.Period{}, ierr.NewError("no bookings in file").
			WithHint("The file must contain at least one booking").
			Mark(ierr.ErrValidation)
	}

	from := slices.MinFunc(checkIns, func(a, b time.Time) int { return a.Compare(b) })
	to := slices.MaxFunc(checkIns, func(a, b time.Time) int { return a.Compare(b) })
	return report.CustomPeriod(from, to, opts.period)
}
