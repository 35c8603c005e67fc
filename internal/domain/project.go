package domain

import "time"

// Project — проект на платформе.
//
// Проект группирует датасеты, dpk-приложения и пайплайны
// и задаёт границу прав доступа.
type Project struct {
	// ID — уникальный идентификатор проекта.
	ID string `json:"id"`

	// Name — уникальное имя проекта.
	Name string `json:"name"`

	// Creator — email создателя проекта.
	Creator string `json:"creator,omitempty"`

	// CreatedAt — время создания.
	CreatedAt time.Time `json:"created_at"`
}
