package domain

import (
	"encoding/json"
	"time"
)

// Pipeline — пайплайн, сохранённый на платформе.
//
// Spec хранится как raw JSON: формат спецификации описывается
// пакетом pipeline (ParseSpec), domain не зависит от него.
type Pipeline struct {
	// ID — уникальный идентификатор пайплайна.
	ID string `json:"id"`

	// ProjectID — ссылка на проект.
	ProjectID string `json:"project_id"`

	// Name — имя пайплайна, уникальное в рамках проекта.
	Name string `json:"name"`

	// Spec — декларативная спецификация шагов (JSON).
	Spec json.RawMessage `json:"spec,omitempty"`

	// CreatedAt — время создания.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt — время последнего обновления.
	UpdatedAt time.Time `json:"updated_at"`
}
