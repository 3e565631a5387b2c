// ABOUTME: Health command for the politicsystem CLI
// ABOUTME: Checks BFF connectivity and whether its upstream is configured

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/edududs/PoliticSystem/internal/client"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check BFF connectivity",
	Long: `Check connectivity to a running PoliticSystem BFF and report whether its
upstream API is configured.

Exit Codes:
  0  BFF up with an upstream configured
  1  BFF up but DJANGO_API_URL unset (every API call fails)
  2  BFF unreachable`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth probes the BFF and returns the exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()

	resp, err := client.New(url).Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	out := formatHealthHuman
	if IsJSONOutput() {
		out = formatHealthJSON
	}
	fmt.Fprintln(w, out(url, resp))

	if resp.Upstream != "ok" {
		return 1
	}
	return 0
}

func formatHealthHuman(url string, resp *client.HealthResponse) string {
	return fmt.Sprintf("Backend:  %s\nStatus:   %s\nUpstream: %s", url, resp.Status, resp.Upstream)
}

func formatHealthJSON(url string, resp *client.HealthResponse) string {
	data, _ := json.MarshalIndent(struct {
		Backend string `json:"backend"`
		*client.HealthResponse
	}{url, resp}, "", "  ")
	return string(data)
}
