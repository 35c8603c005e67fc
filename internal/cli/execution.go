package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/Annotata/internal/domain"
)

// NewExecutionCmd — группа команд для executions.
func NewExecutionCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execution",
		Short: "Manage pipeline executions",
	}
	cmd.AddCommand(
		newExecutionListCmd(apiFn, outputFn),
		newExecutionShowCmd(apiFn, outputFn),
		newExecutionCreateCmd(apiFn, outputFn),
		newExecutionCancelCmd(apiFn, outputFn),
	)
	return cmd
}

var executionHeaders = []string{"ID", "PIPELINE", "STATUS", "ERROR"}

func executionRow(e *domain.Execution) []string {
	return []string{e.ID, e.PipelineID, e.Status.String(), e.Error}
}

func newExecutionListCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var pipelineID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List executions",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			executions, err := api.Executions.List(cmd.Context(), pipelineID)
			if err != nil {
				return err
			}

			rows := make([][]string, len(executions))
			for i := range executions {
				rows[i] = executionRow(&executions[i])
			}
			outputFn().Print(executionHeaders, rows, executions)
			return nil
		},
	}
	cmd.Flags().StringVar(&pipelineID, "pipeline", "", "Filter by pipeline ID")
	return cmd
}

func newExecutionShowCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show execution details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			execution, err := api.Executions.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			outputFn().Print(executionHeaders, [][]string{executionRow(execution)}, execution)
			return nil
		},
	}
}

func newExecutionCreateCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var pipelineID, inputsJSON string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an execution of a pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			var inputs map[string]any
			if inputsJSON != "" {
				if err := json.Unmarshal([]byte(inputsJSON), &inputs); err != nil {
					return fmt.Errorf("parse --inputs: %w", err)
				}
			}

			api, err := apiFn()
			if err != nil {
				return err
			}
			execution, err := api.Executions.Create(cmd.Context(), pipelineID, inputs)
			if err != nil {
				return err
			}
			out := outputFn()
			out.Success(fmt.Sprintf("Execution created: %s", execution.ID))
			out.Print(executionHeaders, [][]string{executionRow(execution)}, execution)
			return nil
		},
	}
	cmd.Flags().StringVar(&pipelineID, "pipeline", "", "Pipeline ID (required)")
	cmd.Flags().StringVar(&inputsJSON, "inputs", "", "Execution inputs as JSON object")
	cmd.MarkFlagRequired("pipeline")
	return cmd
}

func newExecutionCancelCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel a pending or running execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			err = api.Executions.SetStatus(cmd.Context(), args[0],
				domain.ExecutionStatusCancelled, "")
			if err != nil {
				return err
			}
			outputFn().Success("Execution cancelled")
			return nil
		},
	}
}
