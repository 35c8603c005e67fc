package repos

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/shaiso/Annotata/internal/client"
	"github.com/shaiso/Annotata/internal/domain"
)

// Dpks — репозиторий dpk-пакетов.
type Dpks struct {
	client *client.Client
}

// Get возвращает dpk по идентификатору.
func (r *Dpks) Get(ctx context.Context, dpkID string) (*domain.Dpk, error) {
	var dpk domain.Dpk
	if err := r.client.Get(ctx, "/dpks/"+url.PathEscape(dpkID), &dpk); err != nil {
		return nil, err
	}
	return &dpk, nil
}

// GetByName возвращает последнюю ревизию dpk по имени.
func (r *Dpks) GetByName(ctx context.Context, name string) (*domain.Dpk, error) {
	var dpks []domain.Dpk
	query := url.Values{"name": {name}}
	if _, err := r.client.List(ctx, "/dpks", query, &dpks); err != nil {
		return nil, err
	}
	if len(dpks) == 0 {
		return nil, &client.PlatformError{
			StatusCode: http.StatusNotFound,
			Code:       "404",
			Message:    fmt.Sprintf("dpk %q not found", name),
		}
	}
	return &dpks[0], nil
}

// List возвращает dpk, доступные в проекте.
func (r *Dpks) List(ctx context.Context, projectID string) ([]domain.Dpk, error) {
	query := url.Values{}
	if projectID != "" {
		query.Set("project_id", projectID)
	}
	var dpks []domain.Dpk
	if _, err := r.client.List(ctx, "/dpks", query, &dpks); err != nil {
		return nil, err
	}
	return dpks, nil
}

// Revisions возвращает все ревизии dpk.
func (r *Dpks) Revisions(ctx context.Context, dpkID string) ([]domain.Dpk, error) {
	var revisions []domain.Dpk
	p := "/dpks/" + url.PathEscape(dpkID) + "/revisions"
	if _, err := r.client.List(ctx, p, nil, &revisions); err != nil {
		return nil, err
	}
	return revisions, nil
}

// Publish загружает собранный .dpk архив на платформу.
func (r *Dpks) Publish(ctx context.Context, archivePath string) (*domain.Dpk, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open dpk archive: %w", err)
	}
	defer file.Close()

	var dpk domain.Dpk
	err = r.client.Upload(ctx, "/dpks", filepath.Base(archivePath), file, nil, &dpk)
	if err != nil {
		return nil, err
	}
	return &dpk, nil
}

// Pull скачивает архив dpk в dst.
func (r *Dpks) Pull(ctx context.Context, dpkID string, dst io.Writer) error {
	body, err := r.client.Download(ctx, "/dpks/"+url.PathEscape(dpkID)+"/content")
	if err != nil {
		return err
	}
	defer body.Close()
	if _, err := io.Copy(dst, body); err != nil {
		return fmt.Errorf("write dpk archive: %w", err)
	}
	return nil
}

// Delete удаляет dpk со всеми ревизиями.
func (r *Dpks) Delete(ctx context.Context, dpkID string) error {
	return r.client.Delete(ctx, "/dpks/"+url.PathEscape(dpkID))
}
