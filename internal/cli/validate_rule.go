package cli

import (
	"fmt"

	"smartbook/internal/citytax"
	ierr "smartbook/internal/errors"

	"github.com/spf13/cobra"
)

func newValidateRuleCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate-rule",
		Short: "Check the tax rules of a YAML file",
		Long: `validate-rule reports configuration warnings for every rule and fails when a
rule cannot be used for calculation or when two validity windows overlap.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := LoadDocument(file)
			if err != nil {
				return err
			}
			if len(doc.Rules) == 0 {
				return ierr.NewError("no rules in file").
					WithHint("The file must contain at least one rule under \"rules\"").
					Mark(ierr.ErrValidation)
			}

			rules, err := doc.ToRules()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var failed error
			for i, rule := range rules {
				warnings, err := citytax.ValidateRule(rule)
				label := fmt.Sprintf("rule %d (from %s)", i+1, doc.Rules[i].ValidFrom)
				switch {
				case err != nil:
					fmt.Fprintf(out, "%s: invalid: %s\n", label, ierr.DisplayMessage(err))
					failed = err
				case len(warnings) == 0:
					fmt.Fprintf(out, "%s: ok\n", label)
				default:
					fmt.Fprintf(out, "%s: %d warning(s)\n", label, len(warnings))
				}
				printWarnings(out, warnings)

				for j := range i {
					if citytax.RulesOverlap(rules[j], rule) {
						fmt.Fprintf(out, "%s: overlaps rule %d\n", label, j+1)
						failed = ierr.NewErrorf("rule %d overlaps rule %d", i+1, j+1).
							WithHint("Tax rule validity windows must not overlap").
							Mark(ierr.ErrAmbiguousRuleConfiguration)
					}
				}
			}
			return failed
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with rules")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
