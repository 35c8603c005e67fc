package domain

import "time"

// Trigger — расписание запуска пайплайна.
//
// Триггер задаётся либо cron-выражением, либо интервалом в секундах.
type Trigger struct {
	// ID — уникальный идентификатор триггера.
	ID string `json:"id"`

	// ProjectID — ссылка на проект.
	ProjectID string `json:"project_id,omitempty"`

	// PipelineID — пайплайн, который запускает триггер.
	PipelineID string `json:"pipeline_id"`

	// Name — имя триггера.
	Name string `json:"name"`

	// CronExpr — cron-выражение (5 полей, например "0 3 * * *").
	CronExpr string `json:"cron_expr,omitempty"`

	// IntervalSec — интервал запуска в секундах (альтернатива cron).
	IntervalSec int `json:"interval_sec,omitempty"`

	// Timezone — таймзона для cron (IANA, например "Europe/Moscow").
	Timezone string `json:"timezone,omitempty"`

	// Enabled — включён ли триггер.
	Enabled bool `json:"enabled"`

	// Inputs — входные значения для создаваемых executions.
	Inputs map[string]any `json:"inputs,omitempty"`

	// NextDueAt — следующее время срабатывания (UTC).
	NextDueAt *time.Time `json:"next_due_at,omitempty"`

	// LastRunAt — время последнего срабатывания.
	LastRunAt *time.Time `json:"last_run_at,omitempty"`

	// CreatedAt — время создания.
	CreatedAt time.Time `json:"created_at"`
}

// IsCron возвращает true, если триггер задан cron-выражением.
func (t *Trigger) IsCron() bool {
	return t.CronExpr != ""
}

// IsInterval возвращает true, если триггер задан интервалом.
func (t *Trigger) IsInterval() bool {
	return t.IntervalSec > 0
}
