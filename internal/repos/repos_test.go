package repos

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shaiso/Annotata/internal/client"
	"github.com/shaiso/Annotata/internal/domain"
)

func testAPI(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := client.New(client.Options{BaseURL: server.URL, Token: "tok"})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return NewAPI(c)
}

func TestDatasets_GetByName(t *testing.T) {
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/datasets" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("project_id") != "p1" || q.Get("name") != "train" {
			t.Errorf("unexpected query %v", q)
		}
		w.Write([]byte(`{"data": [{"id": "d1", "project_id": "p1", "name": "train"}], "total": 1}`))
	})

	ds, err := api.Datasets.GetByName(context.Background(), "p1", "train")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if ds.ID != "d1" {
		t.Fatalf("unexpected id %q", ds.ID)
	}
}

func TestDatasets_GetByName_NotFound(t *testing.T) {
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [], "total": 0}`))
	})

	_, err := api.Datasets.GetByName(context.Background(), "p1", "absent")
	if !client.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestItems_List_Filters(t *testing.T) {
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/datasets/d1/items" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("remote_path") != "/train" || q.Get("page_size") != "50" {
			t.Errorf("unexpected query %v", q)
		}
		w.Write([]byte(`{"data": [{"id": "i1"}, {"id": "i2"}], "total": 2}`))
	})

	items, err := api.Items.List(context.Background(), "d1",
		domain.ItemFilters{RemotePath: "/train", PageSize: 50})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestItems_Upload(t *testing.T) {
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("remote_path"); got != "/train/cat.jpg" {
			t.Errorf("unexpected remote_path %q", got)
		}
		w.Write([]byte(`{"data": {"id": "i1", "remote_path": "/train/cat.jpg"}}`))
	})

	item, err := api.Items.Upload(context.Background(), "d1", "/train/cat.jpg",
		strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if item.ID != "i1" {
		t.Fatalf("unexpected id %q", item.ID)
	}
}

func TestAnnotations_ListByItem(t *testing.T) {
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/datasets/d1/items/i1/annotations" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"data": [{"id": "a1", "label": "cat", "type": "box"}], "total": 1}`))
	})

	annotations, err := api.Annotations.ListByItem(context.Background(), "d1", "i1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(annotations) != 1 || annotations[0].Label != "cat" {
		t.Fatalf("unexpected annotations: %+v", annotations)
	}
}

func TestExecutions_SetStatus(t *testing.T) {
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/executions/e1/status" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["status"] != "FAILED" || body["error"] != "step failed" {
			t.Errorf("unexpected body %v", body)
		}
		w.Write([]byte(`{"data": null}`))
	})

	err := api.Executions.SetStatus(context.Background(), "e1",
		domain.ExecutionStatusFailed, "step failed")
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
}

func TestPipelines_Create(t *testing.T) {
	spec := json.RawMessage(`{"steps": [{"kind": "items.list"}]}`)
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ProjectID string          `json:"project_id"`
			Name      string          `json:"name"`
			Spec      json.RawMessage `json:"spec"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.ProjectID != "p1" || body.Name != "fetch" {
			t.Errorf("unexpected body: %+v", body)
		}
		w.Write([]byte(`{"data": {"id": "pl1", "name": "fetch"}}`))
	})

	pipeline, err := api.Pipelines.Create(context.Background(), "p1", "fetch", spec)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if pipeline.ID != "pl1" {
		t.Fatalf("unexpected id %q", pipeline.ID)
	}
}
