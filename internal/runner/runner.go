package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shaiso/Annotata/internal/domain"
	"github.com/shaiso/Annotata/internal/mq"
	"github.com/shaiso/Annotata/internal/pipeline"
	"github.com/shaiso/Annotata/internal/repos"
	"github.com/shaiso/Annotata/internal/telemetry"
)

// Runner выполняет executions пайплайнов.
//
// Жизненный цикл одного execution:
//
//	execution.pending → RUNNING → выполнение шагов → SUCCEEDED/FAILED
//
// Повторная доставка сообщения безопасна: executions в терминальном
// статусе пропускаются.
type Runner struct {
	api       *repos.API
	executor  *pipeline.Executor
	publisher *mq.Publisher
	logger    *slog.Logger
	prefetch  int
}

// Config — зависимости раннера.
type Config struct {
	API *repos.API

	// Registry необязателен: по умолчанию собирается реестр
	// встроенных шагов поверх API.
	Registry *pipeline.Registry

	// Publisher необязателен: без него события completed
	// не публикуются.
	Publisher *mq.Publisher

	Logger   *slog.Logger
	Prefetch int
}

// New создаёт раннер.
func New(cfg Config) *Runner {
	registry := cfg.Registry
	if registry == nil {
		registry = pipeline.DefaultRegistry(cfg.API.PipelineDeps())
	}
	return &Runner{
		api:       cfg.API,
		executor:  pipeline.NewExecutor(registry),
		publisher: cfg.Publisher,
		logger:    cfg.Logger,
		prefetch:  cfg.Prefetch,
	}
}

// Run потребляет executions.pending до отмены контекста.
func (r *Runner) Run(ctx context.Context, conn *mq.Connection) error {
	consumer := mq.NewConsumer(conn, r.logger, mq.ConsumerConfig{
		Queue:    mq.QueueExecutionsPending,
		Handler:  r.handle,
		Prefetch: r.prefetch,
	})
	return consumer.Run(ctx)
}

// handle обрабатывает одно сообщение очереди.
func (r *Runner) handle(ctx context.Context, d *mq.Delivery) error {
	payload, err := mq.ParsePayload[mq.ExecutionPendingPayload](&d.Message)
	if err != nil {
		return fmt.Errorf("parse execution.pending payload: %w", err)
	}
	return r.Process(ctx, payload.ExecutionID)
}

// Process выполняет один execution от начала до конца.
func (r *Runner) Process(ctx context.Context, executionID string) error {
	logger := telemetry.WithExecutionID(r.logger, executionID)

	execution, err := r.api.Executions.Get(ctx, executionID)
	if err != nil {
		return fmt.Errorf("get execution: %w", err)
	}
	if execution.Status.IsTerminal() {
		logger.Info("execution already finished, skipping", "status", execution.Status)
		return nil
	}

	pl, err := r.api.Pipelines.Get(ctx, execution.PipelineID)
	if err != nil {
		return fmt.Errorf("get pipeline: %w", err)
	}
	spec, err := pipeline.ParseSpec(pl.Spec)
	if err != nil {
		// Спецификация не парсится — execution фейлится сразу.
		return r.finish(ctx, execution, err)
	}

	if err := r.api.Executions.SetStatus(ctx, executionID, domain.ExecutionStatusRunning, ""); err != nil {
		return fmt.Errorf("mark running: %w", err)
	}
	logger = telemetry.WithPipelineID(logger, execution.PipelineID)
	logger.Info("execution started", "steps", len(spec.Steps))

	pc := pipeline.NewContext()
	if err := r.seed(ctx, pc, execution.Inputs); err != nil {
		return r.finish(ctx, execution, err)
	}

	started := time.Now()
	runErr := r.executor.Run(telemetry.WithLogger(ctx, logger), spec, pc)
	executionDuration.Observe(time.Since(started).Seconds())

	return r.finish(ctx, execution, runErr)
}

// finish переводит execution в терминальный статус и публикует
// событие завершения.
func (r *Runner) finish(ctx context.Context, execution *domain.Execution, runErr error) error {
	status := domain.ExecutionStatusSucceeded
	errMsg := ""
	if runErr != nil {
		status = domain.ExecutionStatusFailed
		errMsg = runErr.Error()
	}
	executionsTotal.WithLabelValues(status.String()).Inc()

	if err := r.api.Executions.SetStatus(ctx, execution.ID, status, errMsg); err != nil {
		return fmt.Errorf("set status %s: %w", status, err)
	}

	logger := telemetry.WithExecutionID(r.logger, execution.ID)
	if runErr != nil {
		logger.Error("execution failed", "error", runErr)
	} else {
		logger.Info("execution succeeded")
	}

	if r.publisher != nil {
		err := r.publisher.PublishExecutionCompleted(ctx, mq.ExecutionCompletedPayload{
			ExecutionID: execution.ID,
			PipelineID:  execution.PipelineID,
			Status:      status,
			Error:       errMsg,
		})
		if err != nil {
			logger.Warn("failed to publish execution.completed", "error", err)
		}
	}
	return nil
}

// seed заполняет контекст пайплайна из inputs execution'а.
//
// Ссылочные значения ({"dataset_id": ...}, {"dataset_id", "item_id"})
// разворачиваются в доменные объекты запросами к платформе,
// остальные значения кладутся как есть.
func (r *Runner) seed(ctx context.Context, pc *pipeline.Context, inputs map[string]any) error {
	for key, raw := range inputs {
		value, err := r.resolve(ctx, raw)
		if err != nil {
			return fmt.Errorf("seed input %q: %w", key, err)
		}
		pc.Put(key, value)
	}
	return nil
}

func (r *Runner) resolve(ctx context.Context, raw any) (pipeline.Value, error) {
	record, ok := raw.(map[string]any)
	if !ok {
		return pipeline.FromAny(raw), nil
	}
	datasetID, hasDataset := record["dataset_id"].(string)
	itemID, hasItem := record["item_id"].(string)

	switch {
	case hasDataset && hasItem:
		item, err := r.api.Items.Get(ctx, datasetID, itemID)
		if err != nil {
			return pipeline.Value{}, err
		}
		return pipeline.ObjectValue(item), nil
	case hasDataset:
		dataset, err := r.api.Datasets.Get(ctx, datasetID)
		if err != nil {
			return pipeline.Value{}, err
		}
		return pipeline.ObjectValue(dataset), nil
	default:
		return pipeline.RecordValue(record), nil
	}
}
