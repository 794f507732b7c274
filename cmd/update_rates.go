package main

import (
	"fmt"

	"shopfx/internal/app"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newUpdateRatesCmd is the scheduled job entry point. It always exits 0:
// a failed run is reported through logs and the admin notification, not
// as a process failure.
func newUpdateRatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update-rates",
		Short: "Fetch today's exchange rates once and record the new ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := app.UpdateRatesOnce(cmd.Context())
			if err != nil {
				logrus.WithError(err).Error("Exchange rate update failed")
				return nil
			}
			for _, rate := range updated {
				fmt.Fprintf(cmd.OutOrStdout(), "Successfully updated %q\n", rate)
			}
			return nil
		},
	}
}
