package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var workspaceCmd = &cobra.Command{
	Use:     "workspace",
	Aliases: []string{"ws"},
	Short:   "Inspect and manage workspaces",
}

var workspaceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all workspaces",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		workspaces, err := application.Backend.ListWorkspaces(cmd.Context())
		if err != nil {
			return err
		}
		if len(workspaces) == 0 {
			fmt.Println("No workspaces found.")
			return nil
		}
		for _, ws := range workspaces {
			fmt.Printf("%-30s %4d files   modified %s\n",
				ws.Name, ws.TotalFiles, relativeTime(ws.LastModified))
		}
		return nil
	},
}

var workspaceFilesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the files of a workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		workspace, err := requireWorkspace()
		if err != nil {
			return err
		}
		files, err := application.Backend.ListWorkspaceFiles(cmd.Context(), workspace)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Printf("Workspace %s has no files.\n", workspace)
			return nil
		}
		for _, f := range files {
			fmt.Printf("%6d  %-40s %s\n", f.ID, f.FileName, relativeTime(f.LastModified))
		}
		return nil
	},
}

var workspaceCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := application.Backend.CreateWorkspace(cmd.Context(), args[0], application.Config.UserID)
		if err != nil {
			return err
		}
		fmt.Printf("Workspace %s created.\n", ws.Name)
		return nil
	},
}

var workspaceDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a workspace and everything in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.Backend.DeleteWorkspace(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Workspace %s deleted.\n", args[0])
		return nil
	},
}

var workspaceDocIDsCmd = &cobra.Command{
	Use:   "doc-ids <file-id>",
	Short: "Show the doc ids linked to a workspace file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workspace, err := requireWorkspace()
		if err != nil {
			return err
		}
		docIDs, err := application.Backend.GetFileDocIDs(cmd.Context(), workspace, args[0])
		if err != nil {
			return err
		}
		if len(docIDs) == 0 {
			fmt.Println("No doc ids linked.")
			return nil
		}
		fmt.Println(strings.Join(docIDs, "\n"))
		return nil
	},
}

func init() {
	workspaceCmd.AddCommand(workspaceListCmd)
	workspaceCmd.AddCommand(workspaceFilesCmd)
	workspaceCmd.AddCommand(workspaceCreateCmd)
	workspaceCmd.AddCommand(workspaceDeleteCmd)
	workspaceCmd.AddCommand(workspaceDocIDsCmd)
}

// relativeTime renders the backend's timestamp as "3 days ago"; the raw
// string is shown unchanged when it does not parse.
func relativeTime(ts string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return humanize.Time(t)
		}
	}
	return ts
}
