package pipeline

import (
	"context"

	"github.com/shaiso/Annotata/internal/domain"
)

// Интерфейсы платформенных операций, которые используют шаги.
// Реализуются репозиториями SDK, в тестах — заглушками.

// DatasetGetter находит датасет по имени внутри проекта.
type DatasetGetter interface {
	GetByName(ctx context.Context, projectID, name string) (*domain.Dataset, error)
}

// ItemGetter возвращает item по идентификатору.
type ItemGetter interface {
	Get(ctx context.Context, datasetID, itemID string) (*domain.Item, error)
}

// ItemLister возвращает страницу items датасета.
type ItemLister interface {
	List(ctx context.Context, datasetID string, filters domain.ItemFilters) ([]domain.Item, error)
}

// ItemAPI объединяет операции над items.
type ItemAPI interface {
	ItemGetter
	ItemLister
}

// AnnotationLister возвращает аннотации одного item'а.
type AnnotationLister interface {
	ListByItem(ctx context.Context, datasetID, itemID string) ([]domain.Annotation, error)
}

// Deps — платформенные зависимости для сборки шагов.
type Deps struct {
	Datasets    DatasetGetter
	Items       ItemAPI
	Annotations AnnotationLister
}
