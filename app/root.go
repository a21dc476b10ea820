// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "usergate",
	Short: "UserGate is an identity and access service for a user directory",
	Long: `UserGate is an identity and access service for a multi-tenant user
directory. It issues signed bearer tokens on login, validates them on every
request and enforces role-based access to the directory management API.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
