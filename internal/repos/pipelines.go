package repos

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/shaiso/Annotata/internal/client"
	"github.com/shaiso/Annotata/internal/domain"
)

// Pipelines — репозиторий пайплайнов.
type Pipelines struct {
	client *client.Client
}

// Get возвращает пайплайн по идентификатору.
func (r *Pipelines) Get(ctx context.Context, pipelineID string) (*domain.Pipeline, error) {
	var pipeline domain.Pipeline
	if err := r.client.Get(ctx, "/pipelines/"+url.PathEscape(pipelineID), &pipeline); err != nil {
		return nil, err
	}
	return &pipeline, nil
}

// List возвращает пайплайны проекта.
func (r *Pipelines) List(ctx context.Context, projectID string) ([]domain.Pipeline, error) {
	query := url.Values{}
	if projectID != "" {
		query.Set("project_id", projectID)
	}
	var pipelines []domain.Pipeline
	if _, err := r.client.List(ctx, "/pipelines", query, &pipelines); err != nil {
		return nil, err
	}
	return pipelines, nil
}

// Create создаёт пайплайн со спецификацией шагов.
func (r *Pipelines) Create(ctx context.Context, projectID, name string, spec json.RawMessage) (*domain.Pipeline, error) {
	var pipeline domain.Pipeline
	body := map[string]any{
		"project_id": projectID,
		"name":       name,
		"spec":       spec,
	}
	if err := r.client.Post(ctx, "/pipelines", body, &pipeline); err != nil {
		return nil, err
	}
	return &pipeline, nil
}

// Update обновляет спецификацию пайплайна.
func (r *Pipelines) Update(ctx context.Context, pipelineID string, spec json.RawMessage) (*domain.Pipeline, error) {
	var pipeline domain.Pipeline
	body := map[string]any{"spec": spec}
	if err := r.client.Put(ctx, "/pipelines/"+url.PathEscape(pipelineID), body, &pipeline); err != nil {
		return nil, err
	}
	return &pipeline, nil
}

// Delete удаляет пайплайн.
func (r *Pipelines) Delete(ctx context.Context, pipelineID string) error {
	return r.client.Delete(ctx, "/pipelines/"+url.PathEscape(pipelineID))
}
