package repos

import (
	"context"
	"net/url"
	"time"

	"github.com/shaiso/Annotata/internal/client"
	"github.com/shaiso/Annotata/internal/domain"
)

// Triggers — репозиторий триггеров.
type Triggers struct {
	client *client.Client
}

// Get возвращает триггер по идентификатору.
func (r *Triggers) Get(ctx context.Context, triggerID string) (*domain.Trigger, error) {
	var trigger domain.Trigger
	if err := r.client.Get(ctx, "/triggers/"+url.PathEscape(triggerID), &trigger); err != nil {
		return nil, err
	}
	return &trigger, nil
}

// List возвращает триггеры проекта.
func (r *Triggers) List(ctx context.Context, projectID string) ([]domain.Trigger, error) {
	query := url.Values{}
	if projectID != "" {
		query.Set("project_id", projectID)
	}
	var triggers []domain.Trigger
	if _, err := r.client.List(ctx, "/triggers", query, &triggers); err != nil {
		return nil, err
	}
	return triggers, nil
}

// ListDue возвращает включённые триггеры, у которых подошло
// время срабатывания.
func (r *Triggers) ListDue(ctx context.Context, now time.Time) ([]domain.Trigger, error) {
	query := url.Values{
		"enabled": {"true"},
		"due_at":  {now.UTC().Format(time.RFC3339)},
	}
	var triggers []domain.Trigger
	if _, err := r.client.List(ctx, "/triggers", query, &triggers); err != nil {
		return nil, err
	}
	return triggers, nil
}

// Create создаёт триггер.
func (r *Triggers) Create(ctx context.Context, trigger *domain.Trigger) (*domain.Trigger, error) {
	var created domain.Trigger
	if err := r.client.Post(ctx, "/triggers", trigger, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// SetNextDue обновляет времена последнего и следующего срабатывания.
func (r *Triggers) SetNextDue(ctx context.Context, triggerID string, lastRun, nextDue time.Time) error {
	body := map[string]string{
		"last_run_at": lastRun.UTC().Format(time.RFC3339),
		"next_due_at": nextDue.UTC().Format(time.RFC3339),
	}
	return r.client.Put(ctx, "/triggers/"+url.PathEscape(triggerID)+"/schedule", body, nil)
}

// Delete удаляет триггер.
func (r *Triggers) Delete(ctx context.Context, triggerID string) error {
	return r.client.Delete(ctx, "/triggers/"+url.PathEscape(triggerID))
}
