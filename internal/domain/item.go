package domain

import "time"

// Item — единица данных в датасете (файл: изображение, видео, текст).
type Item struct {
	// ID — уникальный идентификатор item.
	ID string `json:"id"`

	// DatasetID — ссылка на датасет.
	DatasetID string `json:"dataset_id"`

	// Name — имя файла.
	Name string `json:"name"`

	// RemotePath — путь item внутри датасета (например, "/folder/cat.jpg").
	RemotePath string `json:"remote_path,omitempty"`

	// MimeType — MIME тип файла.
	MimeType string `json:"mime_type,omitempty"`

	// Size — размер файла в байтах.
	Size int64 `json:"size,omitempty"`

	// AnnotationsCount — количество аннотаций (заполняется платформой).
	AnnotationsCount int `json:"annotations_count,omitempty"`

	// Metadata — метаданные item. Секция "system" принадлежит платформе,
	// секция "user" — пользователю.
	Metadata map[string]any `json:"metadata,omitempty"`

	// CreatedAt — время загрузки.
	CreatedAt time.Time `json:"created_at"`
}
