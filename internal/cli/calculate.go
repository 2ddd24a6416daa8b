package cli

import (
	"encoding/json"

	"smartbook/internal/citytax"

	"github.com/spf13/cobra"
)

func newCalculateCmd() *cobra.Command {
	var (
		file   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate the city tax of the bookings in a YAML file",
		Example: `  taxctl calculate -f booking.yaml
  taxctl calculate -f booking.yaml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := LoadDocument(file)
			if err != nil {
				return err
			}

			results, err := calculateAll(doc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			for i := range results {
				if i > 0 {
					cmd.Println()
				}
				printBreakdown(out, &results[i])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with rules and bookings")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the results as JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// calculateAll runs every booking of doc against the document's rules,
// each booking using the rule valid on its check-in date
func calculateAll(doc *Document) ([]citytax.BookingTaxResult, error) {
	return calculateBookings(doc, doc.AllBookings())
}

func calculateBookings(doc *Document, bookings []BookingDoc) ([]citytax.BookingTaxResult, error) {
	rules, err := doc.ToRules()
	if err != nil {
		return nil, err
	}

	results := make([]citytax.BookingTaxResult, 0, len(bookings))
	for _, b := range bookings {
		booking, guests, err := b.ToBooking()
		if err != nil {
			return nil, err
		}

		result, err := citytax.CalculateWithRules(booking, guests, rules)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}
