package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/app"
	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/core/ingest"
)

var (
	application *app.App

	workspaceFlag string
)

var rootCmd = &cobra.Command{
	Use:   "ragctl",
	Short: "Upload and manage documents in RAG workspaces",
	Long: `ragctl drives the document ingestion pipeline of the RAG backend:
it uploads local files, remote URLs, or pasted text into a workspace,
waits for processing, and links the resulting doc ids to the workspace
file record.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		application, err = app.NewApp(printTransition)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil {
			application.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workspaceFlag, "workspace", "w", "", "target workspace name")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(workspaceCmd)
	rootCmd.AddCommand(watchCmd)
}

// ExecuteContext runs the CLI under the given context.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// printTransition renders pipeline progress on stdout. Terminal stages get
// their own lines in the command handlers; this keeps the stream light.
func printTransition(snap ingest.Snapshot) {
	switch snap.Stage {
	case ingest.StageUploading:
		fmt.Printf("  %s: uploading...\n", snap.FileName)
	case ingest.StageProcessing:
		fmt.Printf("  %s: processing...\n", snap.FileName)
	case ingest.StageLinking:
		fmt.Printf("  %s: linking doc ids...\n", snap.FileName)
	case ingest.StageFailed:
		if snap.Err != nil {
			fmt.Printf("  %s: failed at %s: %s\n", snap.FileName, snap.Err.Stage, snap.Err.Error())
		}
	}
}

func requireWorkspace() (string, error) {
	if workspaceFlag == "" {
		return "", fmt.Errorf("a workspace is required, pass --workspace")
	}
	return workspaceFlag, nil
}
