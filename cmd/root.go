// ABOUTME: Root command for the politicsystem binary
// ABOUTME: Handles global flags shared by the server and the client commands

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:3000"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "politicsystem",
	Short: "PoliticSystem web front end and BFF",
	Long: `politicsystem serves the PoliticSystem web pages and the backend-for-frontend
API that keeps upstream tokens in httpOnly cookies.

Client commands (health, whoami, users) talk to a running instance.

Environment Variables:
  POLITICSYSTEM_API_URL  BFF base URL for client commands (default: http://localhost:3000)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "BFF base URL (overrides POLITICSYSTEM_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("POLITICSYSTEM_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
