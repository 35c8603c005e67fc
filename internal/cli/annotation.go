package cli

import (
	"github.com/spf13/cobra"

	"github.com/shaiso/Annotata/internal/domain"
)

// NewAnnotationCmd — группа команд для аннотаций.
func NewAnnotationCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotation",
		Short: "Manage item annotations",
	}
	cmd.AddCommand(
		newAnnotationListCmd(apiFn, outputFn),
		newAnnotationShowCmd(apiFn, outputFn),
		newAnnotationDeleteCmd(apiFn, outputFn),
	)
	return cmd
}

var annotationHeaders = []string{"ID", "TYPE", "LABEL", "CREATOR"}

func annotationRow(a *domain.Annotation) []string {
	return []string{a.ID, string(a.Type), a.Label, a.Creator}
}

func newAnnotationListCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var datasetID, itemID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List annotations of an item",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			annotations, err := api.Annotations.ListByItem(cmd.Context(), datasetID, itemID)
			if err != nil {
				return err
			}

			rows := make([][]string, len(annotations))
			for i := range annotations {
				rows[i] = annotationRow(&annotations[i])
			}
			outputFn().Print(annotationHeaders, rows, annotations)
			return nil
		},
	}
	cmd.Flags().StringVar(&datasetID, "dataset", "", "Dataset ID (required)")
	cmd.Flags().StringVar(&itemID, "item", "", "Item ID (required)")
	cmd.MarkFlagRequired("dataset")
	cmd.MarkFlagRequired("item")
	return cmd
}

func newAnnotationShowCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var datasetID, itemID string

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show annotation details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			annotation, err := api.Annotations.Get(cmd.Context(), datasetID, itemID, args[0])
			if err != nil {
				return err
			}
			outputFn().Print(annotationHeaders, [][]string{annotationRow(annotation)}, annotation)
			return nil
		},
	}
	cmd.Flags().StringVar(&datasetID, "dataset", "", "Dataset ID (required)")
	cmd.Flags().StringVar(&itemID, "item", "", "Item ID (required)")
	cmd.MarkFlagRequired("dataset")
	cmd.MarkFlagRequired("item")
	return cmd
}

func newAnnotationDeleteCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var datasetID, itemID string

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an annotation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			if err := api.Annotations.Delete(cmd.Context(), datasetID, itemID, args[0]); err != nil {
				return err
			}
			outputFn().Success("Annotation deleted")
			return nil
		},
	}
	cmd.Flags().StringVar(&datasetID, "dataset", "", "Dataset ID (required)")
	cmd.Flags().StringVar(&itemID, "item", "", "Item ID (required)")
	cmd.MarkFlagRequired("dataset")
	cmd.MarkFlagRequired("item")
	return cmd
}
