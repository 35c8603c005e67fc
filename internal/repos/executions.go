package repos

import (
	"context"
	"net/url"

	"github.com/shaiso/Annotata/internal/client"
	"github.com/shaiso/Annotata/internal/domain"
)

// Executions — репозиторий executions.
type Executions struct {
	client *client.Client
}

// Get возвращает execution по идентификатору.
func (r *Executions) Get(ctx context.Context, executionID string) (*domain.Execution, error) {
	var execution domain.Execution
	if err := r.client.Get(ctx, "/executions/"+url.PathEscape(executionID), &execution); err != nil {
		return nil, err
	}
	return &execution, nil
}

// List возвращает executions пайплайна.
func (r *Executions) List(ctx context.Context, pipelineID string) ([]domain.Execution, error) {
	query := url.Values{}
	if pipelineID != "" {
		query.Set("pipeline_id", pipelineID)
	}
	var executions []domain.Execution
	if _, err := r.client.List(ctx, "/executions", query, &executions); err != nil {
		return nil, err
	}
	return executions, nil
}

// Create создаёт execution пайплайна с начальными значениями контекста.
func (r *Executions) Create(ctx context.Context, pipelineID string, inputs map[string]any) (*domain.Execution, error) {
	var execution domain.Execution
	body := map[string]any{
		"pipeline_id": pipelineID,
		"inputs":      inputs,
	}
	if err := r.client.Post(ctx, "/executions", body, &execution); err != nil {
		return nil, err
	}
	return &execution, nil
}

// SetStatus обновляет статус execution. Для FAILED передаётся
// текст ошибки.
func (r *Executions) SetStatus(ctx context.Context, executionID string, status domain.ExecutionStatus, errMsg string) error {
	body := map[string]string{"status": status.String()}
	if errMsg != "" {
		body["error"] = errMsg
	}
	return r.client.Put(ctx, "/executions/"+url.PathEscape(executionID)+"/status", body, nil)
}
