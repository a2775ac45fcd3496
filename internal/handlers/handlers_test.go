package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"tasklist/internal/models"
	"tasklist/internal/store"
	"tasklist/internal/todo"
)

func setupTestHandlers(t *testing.T) (*Handlers, *todo.Service) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	kv, err := store.NewSQLiteKV(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	s := todo.NewService(store.NewAdapter(kv, store.DefaultKey, logger))
	s.Init(context.Background())

	return New(s, logger), s
}

func withID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeTask(t *testing.T, rec *httptest.ResponseRecorder) models.Task {
	t.Helper()
	var task models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to decode task: %v: %s", err, rec.Body.String())
	}
	return task
}

func decodeTasks(t *testing.T, rec *httptest.ResponseRecorder) []models.Task {
	t.Helper()
	var tasks []models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("failed to decode tasks: %v: %s", err, rec.Body.String())
	}
	return tasks
}

func TestListTasksHandler_Empty(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.ListTasks(rec, httptest.NewRequest("GET", "/api/tasks", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected empty JSON array, got %s", rec.Body.String())
	}
}

func TestListTasksHandler_OrderAndFilter(t *testing.T) {
	h, s := setupTestHandlers(t)
	ctx := context.Background()

	s.Add(ctx, "Oldest task", "")
	middle := s.Add(ctx, "Middle task", "")
	s.Add(ctx, "Newest task", "")
	s.ToggleStatus(ctx, middle.ID)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantTitles []string
	}{
		{name: "default is oldest first", query: "", wantStatus: http.StatusOK, wantTitles: []string{"Oldest task", "Middle task", "Newest task"}},
		{name: "newest first", query: "?order=newest", wantStatus: http.StatusOK, wantTitles: []string{"Newest task", "Middle task", "Oldest task"}},
		{name: "pending only", query: "?status=pending", wantStatus: http.StatusOK, wantTitles: []string{"Oldest task", "Newest task"}},
		{name: "completed only", query: "?status=completed", wantStatus: http.StatusOK, wantTitles: []string{"Middle task"}},
		{name: "bad status", query: "?status=archived", wantStatus: http.StatusBadRequest},
		{name: "bad order", query: "?order=random", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ListTasks(rec, httptest.NewRequest("GET", "/api/tasks"+tt.query, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			tasks := decodeTasks(t, rec)
			if len(tasks) != len(tt.wantTitles) {
				t.Fatalf("expected %d tasks, got %d", len(tt.wantTitles), len(tasks))
			}
			for i, title := range tt.wantTitles {
				if tasks[i].Title != title {
					t.Errorf("position %d: expected %q, got %q", i, title, tasks[i].Title)
				}
			}
		})
	}
}

func TestCreateTaskHandler_Success(t *testing.T) {
	h, s := setupTestHandlers(t)

	form := url.Values{}
	form.Set("title", "Buy milk")
	form.Set("description", "2% fat")

	rec := httptest.NewRecorder()
	h.CreateTask(rec, formRequest("POST", "/api/tasks", form))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	task := decodeTask(t, rec)
	if task.ID == "" || task.Title != "Buy milk" || task.Status != models.StatusPending {
		t.Errorf("unexpected task: %+v", task)
	}
	if task.UpdatedAt != nil {
		t.Errorf("expected updatedAt to be absent, got %v", task.UpdatedAt)
	}
	if len(s.Tasks()) != 1 {
		t.Errorf("expected 1 stored task, got %d", len(s.Tasks()))
	}
}

func TestCreateTaskHandler_ValidationError(t *testing.T) {
	h, s := setupTestHandlers(t)

	form := url.Values{}
	form.Set("title", "abc")

	rec := httptest.NewRecorder()
	h.CreateTask(rec, formRequest("POST", "/api/tasks", form))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if rec.Body.String() != "title must be more than 3 characters" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
	if len(s.Tasks()) != 0 {
		t.Errorf("expected nothing to be stored, got %d tasks", len(s.Tasks()))
	}
}

func TestGetTaskHandler(t *testing.T) {
	h, s := setupTestHandlers(t)
	task := s.Add(context.Background(), "Buy milk", "")

	rec := httptest.NewRecorder()
	h.GetTask(rec, withID(httptest.NewRequest("GET", "/api/tasks/"+task.ID, nil), task.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if got := decodeTask(t, rec); got.ID != task.ID {
		t.Errorf("expected id %q, got %q", task.ID, got.ID)
	}

	rec = httptest.NewRecorder()
	h.GetTask(rec, withID(httptest.NewRequest("GET", "/api/tasks/missing", nil), "missing"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestUpdateTaskHandler_Success(t *testing.T) {
	h, s := setupTestHandlers(t)
	task := s.Add(context.Background(), "Buy milk", "2% fat")

	form := url.Values{}
	form.Set("title", "Buy oat milk")
	form.Set("description", "")

	rec := httptest.NewRecorder()
	h.UpdateTask(rec, withID(formRequest("PUT", "/api/tasks/"+task.ID, form), task.ID))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	got := decodeTask(t, rec)
	if got.Title != "Buy oat milk" || got.Description != "" {
		t.Errorf("unexpected task after update: %+v", got)
	}
	if got.UpdatedAt == nil {
		t.Error("expected updatedAt to be set")
	}
}

func TestUpdateTaskHandler_NotFound(t *testing.T) {
	h, s := setupTestHandlers(t)
	s.Add(context.Background(), "Buy milk", "")
	before := s.Tasks()

	form := url.Values{}
	form.Set("title", "Something else")

	rec := httptest.NewRecorder()
	h.UpdateTask(rec, withID(formRequest("PUT", "/api/tasks/missing", form), "missing"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
	if after := s.Tasks(); after[0].Title != before[0].Title || after[0].UpdatedAt != nil {
		t.Errorf("expected existing task untouched, got %+v", after[0])
	}
}

func TestUpdateTaskHandler_ValidationError(t *testing.T) {
	h, s := setupTestHandlers(t)
	task := s.Add(context.Background(), "Buy milk", "")

	form := url.Values{}
	form.Set("title", " ")

	rec := httptest.NewRecorder()
	h.UpdateTask(rec, withID(formRequest("PUT", "/api/tasks/"+task.ID, form), task.ID))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if got, _ := s.Get(task.ID); got.Title != "Buy milk" {
		t.Errorf("expected title unchanged, got %q", got.Title)
	}
}

func TestDeleteTaskHandler_Success(t *testing.T) {
	h, s := setupTestHandlers(t)
	task := s.Add(context.Background(), "Buy milk", "")

	rec := httptest.NewRecorder()
	h.DeleteTask(rec, withID(httptest.NewRequest("DELETE", "/api/tasks/"+task.ID, nil), task.ID))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if _, ok := s.Get(task.ID); ok {
		t.Error("expected task to be deleted")
	}
}

func TestDeleteTaskHandler_UnknownIDSucceeds(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.DeleteTask(rec, withID(httptest.NewRequest("DELETE", "/api/tasks/nonexistent-id", nil), "nonexistent-id"))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestToggleTaskHandler_Success(t *testing.T) {
	h, s := setupTestHandlers(t)
	task := s.Add(context.Background(), "Buy milk", "")

	rec := httptest.NewRecorder()
	h.ToggleTask(rec, withID(httptest.NewRequest("POST", "/api/tasks/"+task.ID+"/toggle", nil), task.ID))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if got := decodeTask(t, rec); got.Status != models.StatusCompleted {
		t.Errorf("expected task to be completed, got %q", got.Status)
	}
}

func TestToggleTaskHandler_NotFound(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.ToggleTask(rec, withID(httptest.NewRequest("POST", "/api/tasks/missing/toggle", nil), "missing"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestRouter_EndToEnd(t *testing.T) {
	h, _ := setupTestHandlers(t)
	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	resp, err := http.PostForm(srv.URL+"/api/tasks", url.Values{"title": {"Buy milk"}, "description": {"2% fat"}})
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	var created models.Task
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/api/tasks/"+created.ID+"/toggle", "", nil)
	if err != nil {
		t.Fatalf("toggle request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected toggle status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	req, _ := http.NewRequest("DELETE", srv.URL+"/api/tasks/"+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete request failed: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/tasks")
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	defer resp.Body.Close()
	var tasks []models.Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty list after delete, got %d tasks", len(tasks))
	}

	resp, err = http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Errorf("expected ok, got %q", body)
	}
}
