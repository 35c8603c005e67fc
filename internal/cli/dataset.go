package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shaiso/Annotata/internal/repos"
)

// APIFn — фабрика API, вызывается при выполнении команды.
type APIFn func() (*repos.API, error)

// OutputFn — фабрика Output.
type OutputFn func() *Output

// NewDatasetCmd — группа команд для датасетов.
func NewDatasetCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Manage datasets",
	}
	cmd.AddCommand(
		newDatasetListCmd(apiFn, outputFn),
		newDatasetShowCmd(apiFn, outputFn),
		newDatasetCreateCmd(apiFn, outputFn),
		newDatasetDeleteCmd(apiFn, outputFn),
	)
	return cmd
}

var datasetHeaders = []string{"ID", "PROJECT", "NAME", "ITEMS"}

func newDatasetListCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List datasets in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			datasets, err := api.Datasets.List(cmd.Context(), projectID)
			if err != nil {
				return err
			}

			rows := make([][]string, len(datasets))
			for i, d := range datasets {
				rows[i] = []string{d.ID, d.ProjectID, d.Name, strconv.Itoa(d.ItemsCount)}
			}
			outputFn().Print(datasetHeaders, rows, datasets)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "Project ID (required)")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newDatasetShowCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show dataset details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			dataset, err := api.Datasets.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			outputFn().Print(datasetHeaders,
				[][]string{{dataset.ID, dataset.ProjectID, dataset.Name, strconv.Itoa(dataset.ItemsCount)}},
				dataset)
			return nil
		},
	}
}

func newDatasetCreateCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var projectID, name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			dataset, err := api.Datasets.Create(cmd.Context(), projectID, name)
			if err != nil {
				return err
			}
			out := outputFn()
			out.Success(fmt.Sprintf("Dataset created: %s", dataset.ID))
			out.Print(datasetHeaders,
				[][]string{{dataset.ID, dataset.ProjectID, dataset.Name, "0"}},
				dataset)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "Project ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "Dataset name (required)")
	cmd.MarkFlagRequired("project")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newDatasetDeleteCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			if err := api.Datasets.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			outputFn().Success("Dataset deleted")
			return nil
		},
	}
}
