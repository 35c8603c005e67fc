package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/Annotata/internal/domain"
)

// NewProjectCmd — группа команд для проектов.
func NewProjectCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(
		newProjectListCmd(apiFn, outputFn),
		newProjectShowCmd(apiFn, outputFn),
		newProjectCreateCmd(apiFn, outputFn),
		newProjectDeleteCmd(apiFn, outputFn),
	)
	return cmd
}

var projectHeaders = []string{"ID", "NAME", "CREATOR"}

func projectRow(p *domain.Project) []string {
	return []string{p.ID, p.Name, p.Creator}
}

func newProjectListCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			projects, err := api.Projects.List(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, len(projects))
			for i := range projects {
				rows[i] = projectRow(&projects[i])
			}
			outputFn().Print(projectHeaders, rows, projects)
			return nil
		},
	}
}

func newProjectShowCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			project, err := api.Projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			outputFn().Print(projectHeaders, [][]string{projectRow(project)}, project)
			return nil
		},
	}
}

func newProjectCreateCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			project, err := api.Projects.Create(cmd.Context(), name)
			if err != nil {
				return err
			}
			out := outputFn()
			out.Success(fmt.Sprintf("Project created: %s", project.ID))
			out.Print(projectHeaders, [][]string{projectRow(project)}, project)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Project name (required)")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectDeleteCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			if err := api.Projects.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			outputFn().Success("Project deleted")
			return nil
		},
	}
}
