package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shaiso/Annotata/internal/domain"
	"github.com/shaiso/Annotata/internal/pipeline"
)

// NewPipelineCmd — группа команд для пайплайнов.
func NewPipelineCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Manage and run pipelines",
	}
	cmd.AddCommand(
		newPipelineListCmd(apiFn, outputFn),
		newPipelineShowCmd(apiFn, outputFn),
		newPipelineCreateCmd(apiFn, outputFn),
		newPipelineDeleteCmd(apiFn, outputFn),
		newPipelineRunCmd(apiFn, outputFn),
		newPipelineKindsCmd(outputFn),
	)
	return cmd
}

var pipelineHeaders = []string{"ID", "PROJECT", "NAME", "CREATED"}

func pipelineRow(p *domain.Pipeline) []string {
	return []string{p.ID, p.ProjectID, p.Name, p.CreatedAt.Format("2006-01-02 15:04")}
}

func newPipelineListCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pipelines",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			pipelines, err := api.Pipelines.List(cmd.Context(), projectID)
			if err != nil {
				return err
			}

			rows := make([][]string, len(pipelines))
			for i := range pipelines {
				rows[i] = pipelineRow(&pipelines[i])
			}
			outputFn().Print(pipelineHeaders, rows, pipelines)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "Filter by project ID")
	return cmd
}

func newPipelineShowCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show pipeline spec",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			pl, err := api.Pipelines.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			outputFn().JSON(pl)
			return nil
		},
	}
}

func newPipelineCreateCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var projectID, name, specFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a pipeline from a spec file",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(specFile)
			if err != nil {
				return fmt.Errorf("read spec %s: %w", specFile, err)
			}
			// Локальная валидация до обращения к платформе.
			if _, err := pipeline.ParseSpec(raw); err != nil {
				return err
			}

			api, err := apiFn()
			if err != nil {
				return err
			}
			pl, err := api.Pipelines.Create(cmd.Context(), projectID, name, raw)
			if err != nil {
				return err
			}
			out := outputFn()
			out.Success(fmt.Sprintf("Pipeline created: %s", pl.ID))
			out.Print(pipelineHeaders, [][]string{pipelineRow(pl)}, pl)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "Project ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "Pipeline name (required)")
	cmd.Flags().StringVar(&specFile, "spec", "", "Path to pipeline spec JSON (required)")
	cmd.MarkFlagRequired("project")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("spec")
	return cmd
}

func newPipelineDeleteCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			if err := api.Pipelines.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			outputFn().Success("Pipeline deleted")
			return nil
		},
	}
}

// newPipelineRunCmd выполняет спецификацию локально: шаги ходят
// в платформу, результат печатается как снимок контекста.
func newPipelineRunCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var specFile, inputsJSON string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a pipeline spec locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(specFile)
			if err != nil {
				return fmt.Errorf("read spec %s: %w", specFile, err)
			}
			spec, err := pipeline.ParseSpec(raw)
			if err != nil {
				return err
			}

			pc := pipeline.NewContext()
			if inputsJSON != "" {
				var inputs map[string]any
				if err := json.Unmarshal([]byte(inputsJSON), &inputs); err != nil {
					return fmt.Errorf("parse --inputs: %w", err)
				}
				pc.Seed(inputs)
			}

			api, err := apiFn()
			if err != nil {
				return err
			}
			registry := pipeline.DefaultRegistry(api.PipelineDeps())
			if err := pipeline.NewExecutor(registry).Run(cmd.Context(), spec, pc); err != nil {
				return err
			}

			outputFn().JSON(pc.Snapshot())
			return nil
		},
	}
	cmd.Flags().StringVar(&specFile, "spec", "", "Path to pipeline spec JSON (required)")
	cmd.Flags().StringVar(&inputsJSON, "inputs", "", "Initial context values as JSON object")
	cmd.MarkFlagRequired("spec")
	return cmd
}

func newPipelineKindsCmd(outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List available step kinds",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := pipeline.DefaultRegistry(pipeline.Deps{})

			kinds := registry.Kinds()
			rows := make([][]string, len(kinds))
			jsonData := make(map[string]map[string]any, len(kinds))
			for i, kind := range kinds {
				arguments, err := registry.Arguments(kind)
				if err != nil {
					return err
				}
				jsonData[kind] = arguments
				rows[i] = []string{kind, strconv.Itoa(len(arguments))}
			}
			outputFn().Print([]string{"KIND", "ARGUMENTS"}, rows, jsonData)
			return nil
		},
	}
}
