package domain

import "time"

// Dataset — датасет: коллекция items с аннотациями.
type Dataset struct {
	// ID — уникальный идентификатор датасета.
	ID string `json:"id"`

	// ProjectID — ссылка на родительский проект.
	ProjectID string `json:"project_id"`

	// Name — имя датасета, уникальное в рамках проекта.
	Name string `json:"name"`

	// ItemsCount — количество items в датасете (заполняется платформой).
	ItemsCount int `json:"items_count,omitempty"`

	// Metadata — произвольные метаданные датасета.
	Metadata map[string]any `json:"metadata,omitempty"`

	// CreatedAt — время создания.
	CreatedAt time.Time `json:"created_at"`
}
