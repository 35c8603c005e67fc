package domain

import "time"

// Execution — один запуск пайплайна.
type Execution struct {
	// ID — уникальный идентификатор execution.
	ID string `json:"id"`

	// PipelineID — ссылка на пайплайн.
	PipelineID string `json:"pipeline_id"`

	// ProjectID — ссылка на проект.
	ProjectID string `json:"project_id,omitempty"`

	// Status — текущий статус выполнения.
	Status ExecutionStatus `json:"status"`

	// Inputs — входные значения для затравки контекста.
	// Ссылочные входы задаются record'ом с идентификаторами,
	// например {"dataset_id": "..."} (см. FunctionIO).
	Inputs map[string]any `json:"inputs,omitempty"`

	// Error — сообщение об ошибке для FAILED.
	Error string `json:"error,omitempty"`

	// CreatedAt — время создания.
	CreatedAt time.Time `json:"created_at"`

	// StartedAt — время начала выполнения.
	StartedAt *time.Time `json:"started_at,omitempty"`

	// FinishedAt — время завершения.
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
