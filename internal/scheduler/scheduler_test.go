package scheduler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shaiso/Annotata/internal/client"
	"github.com/shaiso/Annotata/internal/repos"
	"github.com/shaiso/Annotata/internal/telemetry"
)

func TestScheduler_Tick(t *testing.T) {
	var mu sync.Mutex
	var createdExecutions []map[string]any
	var scheduleUpdates int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/triggers":
			w.Write([]byte(`{"data": [
				{"id": "t1", "pipeline_id": "pl1", "name": "nightly",
				 "cron_expr": "0 3 * * *", "enabled": true,
				 "inputs": {"dataset_id": "d1"}},
				{"id": "t2", "pipeline_id": "pl2", "name": "broken",
				 "enabled": true}
			], "total": 2}`))
		case r.Method == http.MethodPost && r.URL.Path == "/executions":
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			mu.Lock()
			createdExecutions = append(createdExecutions, body)
			mu.Unlock()
			w.Write([]byte(`{"data": {"id": "e1", "status": "PENDING"}}`))
		case r.Method == http.MethodPut && r.URL.Path == "/triggers/t1/schedule":
			mu.Lock()
			scheduleUpdates++
			mu.Unlock()
			w.Write([]byte(`{"data": null}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c, err := client.New(client.Options{BaseURL: server.URL, Token: "tok"})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	api := repos.NewAPI(c)

	sched := New(Config{
		Triggers:   api.Triggers,
		Executions: api.Executions,
		Logger:     telemetry.SetupLogger(),
		Interval:   time.Second,
	})

	if err := sched.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	// Оба триггера создают executions; у "broken" нет расписания,
	// поэтому schedule обновляется только для t1.
	if len(createdExecutions) != 2 {
		t.Fatalf("expected 2 executions, got %d", len(createdExecutions))
	}
	if createdExecutions[0]["pipeline_id"] != "pl1" {
		t.Errorf("unexpected first execution: %v", createdExecutions[0])
	}
	if scheduleUpdates != 1 {
		t.Errorf("expected 1 schedule update, got %d", scheduleUpdates)
	}
}
