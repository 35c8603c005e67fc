package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/shaiso/Annotata/internal/telemetry"
)

// Executor выполняет шаги пайплайна строго последовательно.
//
// Первый сбой останавливает выполнение, повторных попыток нет.
// Ошибка платформенной операции возвращается вызывающему без
// оборачивания, чтобы не терять сентинелы.
type Executor struct {
	registry *Registry
}

// NewExecutor создаёт executor поверх реестра шагов.
func NewExecutor(registry *Registry) *Executor {
	return &Executor{registry: registry}
}

// Run выполняет спецификацию над контекстом пайплайна.
//
// Все шаги собираются до начала выполнения: неизвестный kind
// обнаруживается раньше, чем выполнится хоть один шаг.
func (e *Executor) Run(ctx context.Context, spec *Spec, pc *Context) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	steps := make([]Step, len(spec.Steps))
	for i, stepSpec := range spec.Steps {
		step, err := e.registry.Build(stepSpec)
		if err != nil {
			return fmt.Errorf("build step %s: %w", stepSpec.DisplayName(), err)
		}
		steps[i] = step
	}

	logger := telemetry.FromContext(ctx)

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		started := time.Now()
		logger.Debug("step started",
			"step", step.Name(),
			"kind", step.Kind(),
			"index", i,
		)

		if err := step.Execute(ctx, pc); err != nil {
			logger.Error("step failed",
				"step", step.Name(),
				"kind", step.Kind(),
				"index", i,
				"duration", time.Since(started).String(),
				"error", err,
			)
			return err
		}

		logger.Debug("step finished",
			"step", step.Name(),
			"kind", step.Kind(),
			"index", i,
			"duration", time.Since(started).String(),
		)
	}

	return nil
}
