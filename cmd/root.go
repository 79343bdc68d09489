package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sports-events-api",
	Short: "Sports events listing and booking service",
	Long: `Sports events listing and booking service.

Functions:
- Serve categories, venues, events, users and bookings over a REST HTTP API
- Enforce booking invariants (duplicates, capacity, registration window)
- Cache lookup-heavy category and venue reads in Redis`,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}
