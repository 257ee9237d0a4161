package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/core/ingest"
	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/services"
)

var (
	imageNameFlag        string
	imageDescriptionFlag string
	autoDescribeFlag     bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload content into a workspace",
}

var uploadFileCmd = &cobra.Command{
	Use:   "file <path>...",
	Short: "Upload one or more local files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var firstErr error
		for _, path := range args {
			if err := runIngest(cmd, &ingest.LocalFileSource{Path: path}); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	},
}

var uploadURLCmd = &cobra.Command{
	Use:   "url <url>",
	Short: "Have the backend fetch a remote resource",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIngest(cmd, &ingest.URLSource{URL: args[0]})
	},
}

var uploadTextCmd = &cobra.Command{
	Use:   "text <content>",
	Short: "Upload pasted text as a plain-text document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIngest(cmd, &ingest.TextSource{Text: args[0]})
	},
}

func init() {
	uploadCmd.PersistentFlags().StringVar(&imageNameFlag, "image-name", "", "name recorded for image uploads")
	uploadCmd.PersistentFlags().StringVar(&imageDescriptionFlag, "image-description", "", "description recorded for image uploads")
	uploadCmd.PersistentFlags().BoolVar(&autoDescribeFlag, "auto-describe", false, "have the backend generate the image description")

	uploadCmd.AddCommand(uploadFileCmd)
	uploadCmd.AddCommand(uploadURLCmd)
	uploadCmd.AddCommand(uploadTextCmd)
}

func runIngest(cmd *cobra.Command, src ingest.Source) error {
	workspace, err := requireWorkspace()
	if err != nil {
		return err
	}

	var meta *services.ImageMetadataInput
	if imageNameFlag != "" || autoDescribeFlag {
		meta = &services.ImageMetadataInput{
			Name:         imageNameFlag,
			Description:  imageDescriptionFlag,
			AutoGenerate: autoDescribeFlag,
		}
	}

	t, err := application.Session.Ingest(cmd.Context(), workspace, src, meta)
	if err != nil {
		var validationErr *ingest.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("%s", validationErr.Message)
		}
		return err
	}

	switch t.Stage {
	case ingest.StageComplete:
		fmt.Printf("Doc uploaded successfully: %s (%s)\n",
			t.Stored.ServerName, strings.Join(t.Processing.DocIDs, ", "))
	case ingest.StageAlreadyExists:
		fmt.Println("File already exists in the workspace.")
	case ingest.StageNeedsImageMetadata:
		return fmt.Errorf("%s is an image, pass --image-name (and --image-description or --auto-describe)",
			t.Stored.ServerName)
	}
	return nil
}
