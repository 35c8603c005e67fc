package repos

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shaiso/Annotata/internal/client"
	"github.com/shaiso/Annotata/internal/domain"
)

// Projects — репозиторий проектов.
type Projects struct {
	client *client.Client
}

// Get возвращает проект по идентификатору.
func (r *Projects) Get(ctx context.Context, projectID string) (*domain.Project, error) {
	var project domain.Project
	if err := r.client.Get(ctx, "/projects/"+url.PathEscape(projectID), &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByName возвращает проект по имени.
func (r *Projects) GetByName(ctx context.Context, name string) (*domain.Project, error) {
	var projects []domain.Project
	query := url.Values{"name": {name}}
	if _, err := r.client.List(ctx, "/projects", query, &projects); err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, &client.PlatformError{
			StatusCode: http.StatusNotFound,
			Code:       "404",
			Message:    fmt.Sprintf("project %q not found", name),
		}
	}
	return &projects[0], nil
}

// List возвращает все доступные проекты.
func (r *Projects) List(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if _, err := r.client.List(ctx, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Create создаёт проект.
func (r *Projects) Create(ctx context.Context, name string) (*domain.Project, error) {
	var project domain.Project
	body := map[string]string{"name": name}
	if err := r.client.Post(ctx, "/projects", body, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Delete удаляет проект.
func (r *Projects) Delete(ctx context.Context, projectID string) error {
	return r.client.Delete(ctx, "/projects/"+url.PathEscape(projectID))
}
