package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/shaiso/Annotata/internal/objectstore"
)

// StoreFn создаёт подключение к хранилищу артефактов по конфигурации.
type StoreFn func(ctx context.Context) (*objectstore.Store, error)

// NewArtifactCmd — группа команд для артефактов в объектном хранилище.
//
// Артефакты живут отдельно от платформы: dpk-архивы и крупные
// бинарные результаты кладутся напрямую в S3-совместимый бакет.
func NewArtifactCmd(storeFn StoreFn, outputFn OutputFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifact",
		Short: "Manage artifacts in object storage",
	}
	cmd.AddCommand(
		newArtifactUploadCmd(storeFn, outputFn),
		newArtifactDownloadCmd(storeFn, outputFn),
		newArtifactURLCmd(storeFn, outputFn),
		newArtifactDeleteCmd(storeFn, outputFn),
	)
	return cmd
}

func newArtifactUploadCmd(storeFn StoreFn, outputFn OutputFn) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a file to artifact storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer file.Close()
			info, err := file.Stat()
			if err != nil {
				return err
			}

			if key == "" {
				key = filepath.Base(args[0])
			}
			store, err := storeFn(cmd.Context())
			if err != nil {
				return err
			}
			err = store.Put(cmd.Context(), key, file, info.Size(), "application/octet-stream")
			if err != nil {
				return err
			}
			outputFn().Success(fmt.Sprintf("Uploaded %s (%d bytes)", key, info.Size()))
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "Object key (default: file name)")
	return cmd
}

func newArtifactDownloadCmd(storeFn StoreFn, outputFn OutputFn) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download KEY",
		Short: "Download an artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storeFn(cmd.Context())
			if err != nil {
				return err
			}
			content, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer content.Close()

			if output == "" {
				output = filepath.Base(args[0])
			}
			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer file.Close()

			n, err := io.Copy(file, content)
			if err != nil {
				return err
			}
			outputFn().Success(fmt.Sprintf("Saved %s (%d bytes)", output, n))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: key base name)")
	return cmd
}

func newArtifactURLCmd(storeFn StoreFn, outputFn OutputFn) *cobra.Command {
	var expiry time.Duration

	cmd := &cobra.Command{
		Use:   "url KEY",
		Short: "Generate a presigned download URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storeFn(cmd.Context())
			if err != nil {
				return err
			}
			u, err := store.PresignGet(cmd.Context(), args[0], expiry)
			if err != nil {
				return err
			}
			outputFn().JSON(map[string]string{"key": args[0], "url": u.String()})
			return nil
		},
	}
	cmd.Flags().DurationVar(&expiry, "expiry", time.Hour, "URL lifetime")
	return cmd
}

func newArtifactDeleteCmd(storeFn StoreFn, outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "delete KEY",
		Short: "Delete an artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storeFn(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			outputFn().Success("Artifact deleted")
			return nil
		},
	}
}
