package repos

import (
	"context"
	"io"
	"net/url"
	"path"
	"strconv"

	"github.com/shaiso/Annotata/internal/client"
	"github.com/shaiso/Annotata/internal/domain"
)

// Items — репозиторий items.
type Items struct {
	client *client.Client
}

func itemsPath(datasetID string) string {
	return "/datasets/" + url.PathEscape(datasetID) + "/items"
}

// Get возвращает item датасета по идентификатору.
func (r *Items) Get(ctx context.Context, datasetID, itemID string) (*domain.Item, error) {
	var item domain.Item
	p := itemsPath(datasetID) + "/" + url.PathEscape(itemID)
	if err := r.client.Get(ctx, p, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// List возвращает страницу items датасета с учётом фильтров.
func (r *Items) List(ctx context.Context, datasetID string, filters domain.ItemFilters) ([]domain.Item, error) {
	query := url.Values{}
	if filters.RemotePath != "" {
		query.Set("remote_path", filters.RemotePath)
	}
	if filters.MimeType != "" {
		query.Set("mime_type", filters.MimeType)
	}
	if filters.Page > 0 {
		query.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(filters.PageSize))
	}

	var items []domain.Item
	if _, err := r.client.List(ctx, itemsPath(datasetID), query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Upload загружает файл в датасет под указанным remote path.
func (r *Items) Upload(ctx context.Context, datasetID, remotePath string, content io.Reader) (*domain.Item, error) {
	var item domain.Item
	fields := map[string]string{"remote_path": remotePath}
	err := r.client.Upload(ctx, itemsPath(datasetID), path.Base(remotePath), content, fields, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Download возвращает содержимое item'а для потокового чтения.
// Закрыть ReadCloser обязан вызывающий.
func (r *Items) Download(ctx context.Context, datasetID, itemID string) (io.ReadCloser, error) {
	p := itemsPath(datasetID) + "/" + url.PathEscape(itemID) + "/content"
	return r.client.Download(ctx, p)
}

// Delete удаляет item.
func (r *Items) Delete(ctx context.Context, datasetID, itemID string) error {
	return r.client.Delete(ctx, itemsPath(datasetID)+"/"+url.PathEscape(itemID))
}
