package domain

// ItemFilters — параметры фильтрации при листинге items.
//
// Нулевое значение — без фильтрации, первая страница
// с размером по умолчанию (определяется платформой).
type ItemFilters struct {
	// RemotePath — фильтр по пути внутри датасета (префикс).
	RemotePath string `json:"remote_path,omitempty"`

	// MimeType — фильтр по MIME типу.
	MimeType string `json:"mime_type,omitempty"`

	// Page — номер страницы (с нуля).
	Page int `json:"page,omitempty"`

	// PageSize — размер страницы.
	PageSize int `json:"page_size,omitempty"`
}
