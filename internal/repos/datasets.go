package repos

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shaiso/Annotata/internal/client"
	"github.com/shaiso/Annotata/internal/domain"
)

// Datasets — репозиторий датасетов.
type Datasets struct {
	client *client.Client
}

// Get возвращает датасет по идентификатору.
func (r *Datasets) Get(ctx context.Context, datasetID string) (*domain.Dataset, error) {
	var dataset domain.Dataset
	if err := r.client.Get(ctx, "/datasets/"+url.PathEscape(datasetID), &dataset); err != nil {
		return nil, err
	}
	return &dataset, nil
}

// GetByName возвращает датасет проекта по имени.
func (r *Datasets) GetByName(ctx context.Context, projectID, name string) (*domain.Dataset, error) {
	var datasets []domain.Dataset
	query := url.Values{"project_id": {projectID}, "name": {name}}
	if _, err := r.client.List(ctx, "/datasets", query, &datasets); err != nil {
		return nil, err
	}
	if len(datasets) == 0 {
		return nil, &client.PlatformError{
			StatusCode: http.StatusNotFound,
			Code:       "404",
			Message:    fmt.Sprintf("dataset %q not found in project %s", name, projectID),
		}
	}
	return &datasets[0], nil
}

// List возвращает датасеты проекта.
func (r *Datasets) List(ctx context.Context, projectID string) ([]domain.Dataset, error) {
	var datasets []domain.Dataset
	query := url.Values{"project_id": {projectID}}
	if _, err := r.client.List(ctx, "/datasets", query, &datasets); err != nil {
		return nil, err
	}
	return datasets, nil
}

// Create создаёт датасет в проекте.
func (r *Datasets) Create(ctx context.Context, projectID, name string) (*domain.Dataset, error) {
	var dataset domain.Dataset
	body := map[string]string{"project_id": projectID, "name": name}
	if err := r.client.Post(ctx, "/datasets", body, &dataset); err != nil {
		return nil, err
	}
	return &dataset, nil
}

// Delete удаляет датасет.
func (r *Datasets) Delete(ctx context.Context, datasetID string) error {
	return r.client.Delete(ctx, "/datasets/"+url.PathEscape(datasetID))
}
