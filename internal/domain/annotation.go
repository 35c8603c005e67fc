package domain

import (
	"encoding/json"
	"time"
)

// AnnotationType — тип аннотации.
type AnnotationType string

// Типы аннотаций.
const (
	AnnotationTypeBox          AnnotationType = "box"
	AnnotationTypePolygon      AnnotationType = "polygon"
	AnnotationTypePoint        AnnotationType = "point"
	AnnotationTypeSegmentation AnnotationType = "segmentation"
	AnnotationTypeClass        AnnotationType = "class"
)

// Annotation — аннотация на item.
type Annotation struct {
	// ID — уникальный идентификатор аннотации.
	ID string `json:"id"`

	// ItemID — ссылка на item.
	ItemID string `json:"item_id"`

	// DatasetID — ссылка на датасет (денормализовано платформой).
	DatasetID string `json:"dataset_id"`

	// Type — тип аннотации (box, polygon, ...).
	Type AnnotationType `json:"type"`

	// Label — метка класса.
	Label string `json:"label"`

	// Coordinates — геометрия аннотации. Формат зависит от Type,
	// поэтому хранится как raw JSON.
	Coordinates json.RawMessage `json:"coordinates,omitempty"`

	// Attributes — дополнительные атрибуты аннотации.
	Attributes []string `json:"attributes,omitempty"`

	// Metadata — метаданные аннотации.
	Metadata map[string]any `json:"metadata,omitempty"`

	// Creator — email автора.
	Creator string `json:"creator,omitempty"`

	// CreatedAt — время создания.
	CreatedAt time.Time `json:"created_at"`
}
