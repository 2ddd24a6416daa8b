package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
)

// NewRootCmd builds the taxctl command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "taxctl",
		Version: Version,
		Short:   "Offline city tax (imposta di soggiorno) calculator",
		Long: `taxctl computes the imposta di soggiorno of bookings described in YAML files,
using the same engine as the SmartBook API. No database is needed.`,
		SilenceUsage: true,
	}

	root.AddCommand(newCalculateCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newValidateRuleCmd())

	return root
}

// Execute runs the root command against os.Args
func Execute() error {
	return NewRootCmd().Execute()
}
