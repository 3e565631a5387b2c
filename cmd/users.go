// ABOUTME: Users command for the politicsystem CLI
// ABOUTME: Lists users through the BFF as a table or JSON

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/edududs/PoliticSystem/internal/client"
	"github.com/edududs/PoliticSystem/models"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users",
	Long:  `List users via GET /api/users on a running BFF.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runUsers(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
}

// runUsers lists users and returns the exit code
func runUsers(ctx context.Context, w io.Writer) int {
	users, err := client.New(GetAPIURL()).Users(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(users, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	writeUsersTable(w, users)
	return 0
}

func writeUsersTable(w io.Writer, users []models.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tACTIVE")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%t\n", u.ID, u.Username, u.Email, u.IsActive)
	}
	tw.Flush()
}
