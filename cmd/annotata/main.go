// Annotata CLI — инструмент командной строки для работы
// с платформой аннотирования данных.
//
// Использование:
//
//	annotata [--config FILE] [--base-url URL] [--json] <command> <subcommand> [flags]
//
// Команды:
//
//	project     Управление проектами
//	dataset     Управление датасетами
//	item        Управление items
//	annotation  Управление аннотациями
//	dpk         Сборка и публикация dpk-пакетов
//	artifact    Артефакты в объектном хранилище
//	pipeline    Управление и локальный запуск пайплайнов
//	execution   Управление executions
//	trigger     Управление триггерами
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/Annotata/internal/cli"
	"github.com/shaiso/Annotata/internal/client"
	"github.com/shaiso/Annotata/internal/config"
	"github.com/shaiso/Annotata/internal/objectstore"
	"github.com/shaiso/Annotata/internal/repos"
	"github.com/shaiso/Annotata/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	telemetry.SetupLogger()

	var configPath, baseURL string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "annotata",
		Short:         "Annotata CLI — data annotation platform tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Platform API URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	apiFn := func() (*repos.API, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		if baseURL != "" {
			cfg.Platform.BaseURL = baseURL
		}
		if err := cfg.ValidatePlatform(); err != nil {
			return nil, err
		}

		creds := client.Credentials{
			Token:        cfg.Platform.Token,
			ClientID:     cfg.Platform.ClientID,
			ClientSecret: cfg.Platform.ClientSecret,
			TokenURL:     cfg.Platform.TokenURL,
		}
		tokenSource, err := creds.TokenSource(context.Background())
		if err != nil {
			return nil, err
		}

		c, err := client.New(client.Options{
			BaseURL:     cfg.Platform.BaseURL,
			Token:       cfg.Platform.Token,
			TokenSource: tokenSource,
			UserAgent:   "annotata-cli/" + version,
		})
		if err != nil {
			return nil, err
		}
		return repos.NewAPI(c), nil
	}
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }
	storeFn := func(ctx context.Context) (*objectstore.Store, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		return objectstore.New(ctx, cfg.Store)
	}

	rootCmd.AddCommand(
		cli.NewProjectCmd(apiFn, outputFn),
		cli.NewDatasetCmd(apiFn, outputFn),
		cli.NewItemCmd(apiFn, outputFn),
		cli.NewAnnotationCmd(apiFn, outputFn),
		cli.NewDpkCmd(apiFn, outputFn),
		cli.NewPipelineCmd(apiFn, outputFn),
		cli.NewExecutionCmd(apiFn, outputFn),
		cli.NewTriggerCmd(apiFn, outputFn),
		cli.NewArtifactCmd(storeFn, outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
