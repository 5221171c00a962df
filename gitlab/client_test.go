package gitlab

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListJobs(t *testing.T) {
	var gotReq *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 9, "name": "deploy", "stage": "deploy", "status": "success", "duration": 12.3,
			 "web_url": "https://gitlab.example.com/-/jobs/9", "created_at": "2026-08-28T10:00:00Z",
			 "commit": {"short_id": "a1b2c3d", "title": "Ship it"}},
			{"id": 8, "name": "test", "stage": "test", "status": "failed"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token")
	jobs, err := client.ListJobs(context.Background(), 7, "success")
	if err != nil {
		t.Fatal(err)
	}

	if gotReq.Method != http.MethodGet || gotReq.URL.Path != "/api/v4/projects/7/jobs" {
		t.Fatalf("unexpected request: %s %s", gotReq.Method, gotReq.URL.Path)
	}
	query := gotReq.URL.Query()
	if query.Get("access_token") != "secret-token" {
		t.Fatalf("missing access_token query auth: %v", query)
	}
	if query.Get("scope[]") != "success" {
		t.Fatalf("missing scope filter: %v", query)
	}

	if len(jobs) != 2 || jobs[0].ID != 9 {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
	if jobs[0].Commit.ShortID != "a1b2c3d" {
		t.Fatalf("commit not parsed: %+v", jobs[0].Commit)
	}
}

func TestListJobsNoScope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.URL.Query()["scope[]"]; ok {
			t.Errorf("scope[] should be absent when no filter is given: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "t")
	jobs, err := client.ListJobs(context.Background(), 7, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected empty list, got %+v", jobs)
	}
}

func TestJobTrace(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v4/projects/7/jobs/42/trace" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte("line one\nline two"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "t")
	trace, err := client.JobTrace(context.Background(), 7, "42")
	if err != nil {
		t.Fatal(err)
	}
	if trace != "line one\nline two" {
		t.Fatalf("trace = %q", trace)
	}
}

func TestRetryJob(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v4/projects/7/jobs/42/retry" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id": 43, "name": "build", "status": "pending"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "t")
	job, err := client.RetryJob(context.Background(), 7, "42")
	if err != nil {
		t.Fatal(err)
	}
	if job.ID != 43 || job.Status != StatusPending {
		t.Fatalf("unexpected job: %+v", job)
	}
}

func TestCreatePipeline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v4/projects/7/pipeline" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("ref"); got != "main" {
			t.Errorf("ref = %q", got)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 100, "ref": "main", "status": "pending"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "t")
	pipeline, err := client.CreatePipeline(context.Background(), 7, "main")
	if err != nil {
		t.Fatal(err)
	}
	if pipeline.ID != 100 || pipeline.Ref != "main" {
		t.Fatalf("unexpected pipeline: %+v", pipeline)
	}
}

func TestNon2xxIsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "404 Project Not Found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "t")
	_, err := client.ListJobs(context.Background(), 999, "")

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstreamErr.Status != http.StatusNotFound {
		t.Fatalf("status = %d", upstreamErr.Status)
	}
}

func TestTransportFailureIsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, "t")
	_, err := client.ListJobs(context.Background(), 7, "")

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstreamErr.Err == nil || upstreamErr.Status != 0 {
		t.Fatalf("expected transport-level error, got %+v", upstreamErr)
	}
}
