package repos

import (
	"context"
	"net/url"

	"github.com/shaiso/Annotata/internal/client"
	"github.com/shaiso/Annotata/internal/domain"
)

// Annotations — репозиторий аннотаций.
type Annotations struct {
	client *client.Client
}

func annotationsPath(datasetID, itemID string) string {
	return "/datasets/" + url.PathEscape(datasetID) +
		"/items/" + url.PathEscape(itemID) + "/annotations"
}

// Get возвращает аннотацию по идентификатору.
func (r *Annotations) Get(ctx context.Context, datasetID, itemID, annotationID string) (*domain.Annotation, error) {
	var annotation domain.Annotation
	p := annotationsPath(datasetID, itemID) + "/" + url.PathEscape(annotationID)
	if err := r.client.Get(ctx, p, &annotation); err != nil {
		return nil, err
	}
	return &annotation, nil
}

// ListByItem возвращает все аннотации item'а.
func (r *Annotations) ListByItem(ctx context.Context, datasetID, itemID string) ([]domain.Annotation, error) {
	var annotations []domain.Annotation
	if _, err := r.client.List(ctx, annotationsPath(datasetID, itemID), nil, &annotations); err != nil {
		return nil, err
	}
	return annotations, nil
}

// Create создаёт аннотацию item'а.
func (r *Annotations) Create(ctx context.Context, datasetID, itemID string, annotation *domain.Annotation) (*domain.Annotation, error) {
	var created domain.Annotation
	if err := r.client.Post(ctx, annotationsPath(datasetID, itemID), annotation, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete удаляет аннотацию.
func (r *Annotations) Delete(ctx context.Context, datasetID, itemID, annotationID string) error {
	p := annotationsPath(datasetID, itemID) + "/" + url.PathEscape(annotationID)
	return r.client.Delete(ctx, p)
}
