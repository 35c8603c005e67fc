package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/Annotata/internal/domain"
	"github.com/shaiso/Annotata/internal/packaging"
)

// NewDpkCmd — группа команд для dpk-пакетов.
func NewDpkCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dpk",
		Short: "Manage dpk application packages",
	}
	cmd.AddCommand(
		newDpkInitCmd(outputFn),
		newDpkPackCmd(outputFn),
		newDpkPublishCmd(apiFn, outputFn),
		newDpkPullCmd(apiFn, outputFn),
		newDpkListCmd(apiFn, outputFn),
		newDpkRevisionsCmd(apiFn, outputFn),
		newDpkDeleteCmd(apiFn, outputFn),
	)
	return cmd
}

var dpkHeaders = []string{"ID", "NAME", "VERSION", "SCOPE", "CREATOR"}

func dpkRow(d *domain.Dpk) []string {
	return []string{d.ID, d.Name, d.Version, string(d.Scope), d.Creator}
}

func newDpkInitCmd(outputFn OutputFn) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [DIR]",
		Short: "Create a dpk skeleton in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if err := packaging.Init(dir, name); err != nil {
				return err
			}
			outputFn().Success(fmt.Sprintf("Initialized dpk %q in %s", name, dir))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Package name (required)")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newDpkPackCmd(outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "pack [DIR]",
		Short: "Pack a dpk directory into an archive",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			archivePath, err := packaging.Pack(cmd.Context(), dir)
			if err != nil {
				return err
			}
			outputFn().Success(fmt.Sprintf("Packed: %s", archivePath))
			return nil
		},
	}
}

func newDpkPublishCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "publish [DIR]",
		Short: "Pack and publish a dpk to the platform",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			archivePath, err := packaging.Pack(cmd.Context(), dir)
			if err != nil {
				return err
			}

			api, err := apiFn()
			if err != nil {
				return err
			}
			dpk, err := api.Dpks.Publish(cmd.Context(), archivePath)
			if err != nil {
				return err
			}
			out := outputFn()
			out.Success(fmt.Sprintf("Published %s version %s", dpk.Name, dpk.Version))
			out.Print(dpkHeaders, [][]string{dpkRow(dpk)}, dpk)
			return nil
		},
	}
}

func newDpkPullCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pull ID",
		Short: "Download a dpk archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer file.Close()

			if err := api.Dpks.Pull(cmd.Context(), args[0], file); err != nil {
				return err
			}
			outputFn().Success(fmt.Sprintf("Saved to %s", output))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "package.dpk", "Output file")
	return cmd
}

func newDpkListCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dpks",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			dpks, err := api.Dpks.List(cmd.Context(), projectID)
			if err != nil {
				return err
			}

			rows := make([][]string, len(dpks))
			for i := range dpks {
				rows[i] = dpkRow(&dpks[i])
			}
			outputFn().Print(dpkHeaders, rows, dpks)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "Filter by project ID")
	return cmd
}

func newDpkRevisionsCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "revisions ID",
		Short: "List all revisions of a dpk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			revisions, err := api.Dpks.Revisions(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, len(revisions))
			for i := range revisions {
				rows[i] = dpkRow(&revisions[i])
			}
			outputFn().Print(dpkHeaders, rows, revisions)
			return nil
		},
	}
}

func newDpkDeleteCmd(apiFn APIFn, outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a dpk with all revisions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiFn()
			if err != nil {
				return err
			}
			if err := api.Dpks.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			outputFn().Success("Dpk deleted")
			return nil
		},
	}
}
