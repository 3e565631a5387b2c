// ABOUTME: Whoami command for the politicsystem CLI
// ABOUTME: Resolves the user behind an access token through the BFF, as the pages do

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/edududs/PoliticSystem/internal/client"
	"github.com/edududs/PoliticSystem/models"
	"github.com/edududs/PoliticSystem/views"
)

var whoamiToken string

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the user an access token belongs to",
	Long: `Look up the profile for an access token via GET /api/users/me, sending the
token as the access_token cookie.

Exit Codes:
  0  Token accepted
  1  Token missing or rejected
  2  Error (connection, backend failure)

Environment Variables:
  POLITICSYSTEM_TOKEN  Access token (overridden by --token)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout, resolveToken())
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	whoamiCmd.Flags().StringVar(&whoamiToken, "token", "", "Access token (overrides POLITICSYSTEM_TOKEN)")
	rootCmd.AddCommand(whoamiCmd)
}

func resolveToken() string {
	if whoamiToken != "" {
		return whoamiToken
	}
	return os.Getenv("POLITICSYSTEM_TOKEN")
}

// runWhoami looks up the token's user and returns the exit code
func runWhoami(ctx context.Context, w io.Writer, token string) int {
	if token == "" {
		fmt.Fprintln(w, "Error: no access token (use --token or POLITICSYSTEM_TOKEN)")
		return 1
	}

	user, err := client.New(GetAPIURL()).CurrentUser(ctx, token)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		if client.IsUnauthorized(err) {
			return 1
		}
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatUserHuman(user))
	}
	return 0
}

func formatUserHuman(user *models.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Username:   %s\n", user.Username)
	fmt.Fprintf(&b, "Name:       %s\n", user.DisplayName())
	fmt.Fprintf(&b, "Email:      %s", user.Email)
	if birth := views.FormatDate(user.DateBirth); birth != "" {
		fmt.Fprintf(&b, "\nBirth date: %s", birth)
	}
	return b.String()
}
