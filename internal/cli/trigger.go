package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shaiso/Annotata/internal/domain"
	"github.com/shaiso/Annotata/internal/scheduler"
)

// NewTriggerCmd — группа команд для триггеров.
func NewTriggerCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Manage pipeline triggers",
	}
	cmd.AddCommand(
		newTriggerListCmd(apiFn, outputFn),
		newTriggerCreateCmd(apiFn, outputFn),
		newTriggerDeleteCmd(apiFn, outputFn),
	)
	return cmd
}

var triggerHeaders = []string{"ID", "NAME", "PIPELINE", "SCHEDULE", "ENABLED"}

func triggerRow(t *domain.Trigger) []string {
	schedule := t.CronExpr
	if schedule == "" && t.IntervalSec > 0 {
		schedule = fmt.Sprintf("every %ds", t.IntervalSec)
	}
	return []string{t.ID, t.Name, t.PipelineID, schedule, strconv.FormatBool(t.Enabled)}
}

func newTriggerListCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List triggers",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			triggers, err := api.Triggers.List(cmd.Context(), projectID)
			if err != nil {
				return err
			}

			rows := make([][]string, len(triggers))
			for i := range triggers {
				rows[i] = triggerRow(&triggers[i])
			}
			outputFn().Print(triggerHeaders, rows, triggers)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "Filter by project ID")
	return cmd
}

func newTriggerCreateCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var pipelineID, name, cronExpr, timezone, inputsJSON string
	var intervalSec int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a trigger",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cronExpr != "" {
				if err := scheduler.ValidateCronExpr(cronExpr); err != nil {
					return err
				}
			}
			if cronExpr == "" && intervalSec <= 0 {
				return fmt.Errorf("either --cron or --interval is required")
			}

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
			trigger, err := api.Triggers.Create(cmd.Context(), &domain.Trigger{
				PipelineID:  pipelineID,
				Name:        name,
				CronExpr:    cronExpr,
				IntervalSec: intervalSec,
				Timezone:    timezone,
				Enabled:     true,
				Inputs:      inputs,
			})
			if err != nil {
				return err
			}
			out := outputFn()
			out.Success(fmt.Sprintf("Trigger created: %s", trigger.ID))
			out.Print(triggerHeaders, [][]string{triggerRow(trigger)}, trigger)
			return nil
		},
	}
	cmd.Flags().StringVar(&pipelineID, "pipeline", "", "Pipeline ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "Trigger name (required)")
	cmd.Flags().StringVar(&cronExpr, "cron", "", "Cron expression (5 fields)")
	cmd.Flags().IntVar(&intervalSec, "interval", 0, "Interval in seconds")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone for cron")
	cmd.Flags().StringVar(&inputsJSON, "inputs", "", "Execution inputs as JSON object")
	cmd.MarkFlagRequired("pipeline")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newTriggerDeleteCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a trigger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			if err := api.Triggers.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			outputFn().Success("Trigger deleted")
			return nil
		},
	}
}
