package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shaiso/Annotata/internal/domain"
)

// NewItemCmd — группа команд для items.
func NewItemCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage dataset items",
	}
	cmd.AddCommand(
		newItemListCmd(apiFn, outputFn),
		newItemShowCmd(apiFn, outputFn),
		newItemUploadCmd(apiFn, outputFn),
		newItemDownloadCmd(apiFn, outputFn),
		newItemDeleteCmd(apiFn, outputFn),
	)
	return cmd
}

var itemHeaders = []string{"ID", "NAME", "REMOTE PATH", "MIME", "ANNOTATIONS"}

func itemRow(item *domain.Item) []string {
	return []string{item.ID, item.Name, item.RemotePath, item.MimeType,
		strconv.Itoa(item.AnnotationsCount)}
}

func newItemListCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var datasetID, remotePath, mimeType string
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items in a dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			items, err := api.Items.List(cmd.Context(), datasetID, domain.ItemFilters{
				RemotePath: remotePath,
				MimeType:   mimeType,
				Page:       page,
				PageSize:   pageSize,
			})
			if err != nil {
				return err
			}

			rows := make([][]string, len(items))
			for i := range items {
				rows[i] = itemRow(&items[i])
			}
			outputFn().Print(itemHeaders, rows, items)
			return nil
		},
	}
	cmd.Flags().StringVar(&datasetID, "dataset", "", "Dataset ID (required)")
	cmd.Flags().StringVar(&remotePath, "remote-path", "", "Filter by remote path prefix")
	cmd.Flags().StringVar(&mimeType, "mime-type", "", "Filter by MIME type")
	cmd.Flags().IntVar(&page, "page", 0, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Page size")
	cmd.MarkFlagRequired("dataset")
	return cmd
}

func newItemShowCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var datasetID string

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show item details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			item, err := api.Items.Get(cmd.Context(), datasetID, args[0])
			if err != nil {
				return err
			}
			outputFn().Print(itemHeaders, [][]string{itemRow(item)}, item)
			return nil
		},
	}
	cmd.Flags().StringVar(&datasetID, "dataset", "", "Dataset ID (required)")
	cmd.MarkFlagRequired("dataset")
	return cmd
}

func newItemUploadCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var datasetID, remotePath string

	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a file as a dataset item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer file.Close()

			target := remotePath
			if target == "" {
				target = "/" + filepath.Base(args[0])
			}
			item, err := api.Items.Upload(cmd.Context(), datasetID, target, file)
			if err != nil {
				return err
			}
			out := outputFn()
			out.Success(fmt.Sprintf("Item uploaded: %s", item.ID))
			out.Print(itemHeaders, [][]string{itemRow(item)}, item)
			return nil
		},
	}
	cmd.Flags().StringVar(&datasetID, "dataset", "", "Dataset ID (required)")
	cmd.Flags().StringVar(&remotePath, "remote-path", "", "Remote path for the item")
	cmd.MarkFlagRequired("dataset")
	return cmd
}

func newItemDownloadCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var datasetID, output string

	cmd := &cobra.Command{
		Use:   "download ID",
		Short: "Download item content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			body, err := api.Items.Download(cmd.Context(), datasetID, args[0])
			if err != nil {
				return err
			}
			defer body.Close()

			dst := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				dst = f
			}
			if _, err := io.Copy(dst, body); err != nil {
				return fmt.Errorf("write item content: %w", err)
			}
			if output != "" {
				outputFn().Success(fmt.Sprintf("Saved to %s", output))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&datasetID, "dataset", "", "Dataset ID (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.MarkFlagRequired("dataset")
	return cmd
}

func newItemDeleteCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var datasetID string

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			if err := api.Items.Delete(cmd.Context(), datasetID, args[0]); err != nil {
				return err
			}
			outputFn().Success("Item deleted")
			return nil
		},
	}
	cmd.Flags().StringVar(&datasetID, "dataset", "", "Dataset ID (required)")
	cmd.MarkFlagRequired("dataset")
	return cmd
}
