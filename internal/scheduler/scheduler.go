package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shaiso/Annotata/internal/domain"
	"github.com/shaiso/Annotata/internal/mq"
	"github.com/shaiso/Annotata/internal/repos"
)

// Scheduler создаёт executions по сработавшим триггерам.
type Scheduler struct {
	triggers   *repos.Triggers
	executions *repos.Executions
	publisher  *mq.Publisher
	logger     *slog.Logger
	interval   time.Duration
}

// Config — зависимости планировщика.
type Config struct {
	Triggers   *repos.Triggers
	Executions *repos.Executions

	// Publisher необязателен: без него раннер заберёт executions
	// из платформы поллингом.
	Publisher *mq.Publisher

	Logger *slog.Logger

	// Interval — период между тиками (default: 30s).
	Interval time.Duration
}

// New создаёт планировщик.
func New(cfg Config) *Scheduler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Scheduler{
		triggers:   cfg.Triggers,
		executions: cfg.Executions,
		publisher:  cfg.Publisher,
		logger:     cfg.Logger,
		interval:   interval,
	}
}

// Run крутит тики до отмены контекста.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil {
				s.logger.Error("scheduler tick failed", "error", err)
			}
		}
	}
}

// Tick выполняет один проход планировщика:
//
//  1. Забирает сработавшие триггеры с платформы.
//  2. Для каждого создаёт execution с inputs триггера.
//  3. Сдвигает время следующего срабатывания.
//  4. Публикует execution.pending.
//
// Ошибка одного триггера не блокирует остальные.
func (s *Scheduler) Tick(ctx context.Context) error {
	now := time.Now()

	due, err := s.triggers.ListDue(ctx, now)
	if err != nil {
		return fmt.Errorf("list due triggers: %w", err)
	}
	if len(due) == 0 {
		return nil
	}
	s.logger.Debug("found due triggers", "count", len(due))

	var fired int
	for i := range due {
		if err := s.fire(ctx, &due[i], now); err != nil {
			s.logger.Error("failed to fire trigger",
				"trigger_id", due[i].ID,
				"trigger_name", due[i].Name,
				"error", err,
			)
			continue
		}
		fired++
	}

	s.logger.Info("scheduler tick completed", "due", len(due), "fired", fired)
	return nil
}

// fire обрабатывает один сработавший триггер.
func (s *Scheduler) fire(ctx context.Context, trigger *domain.Trigger, now time.Time) error {
	execution, err := s.executions.Create(ctx, trigger.PipelineID, trigger.Inputs)
	if err != nil {
		return fmt.Errorf("create execution: %w", err)
	}

	s.logger.Info("created execution from trigger",
		"execution_id", execution.ID,
		"trigger_id", trigger.ID,
		"pipeline_id", trigger.PipelineID,
	)

	nextDue, err := NextDue(trigger, now)
	if err != nil {
		// Триггер без расписания: execution создан, но сдвигать нечего.
		s.logger.Error("failed to calculate next due",
			"trigger_id", trigger.ID,
			"error", err,
		)
		return nil
	}
	if err := s.triggers.SetNextDue(ctx, trigger.ID, now, nextDue); err != nil {
		return fmt.Errorf("update trigger schedule: %w", err)
	}

	if s.publisher != nil {
		err := s.publisher.PublishExecutionPending(ctx, execution.ID, trigger.PipelineID)
		if err != nil {
			// Не фатально: раннер заберёт execution поллингом.
			s.logger.Warn("failed to publish execution.pending",
				"execution_id", execution.ID,
				"error", err,
			)
		}
	}
	return nil
}
