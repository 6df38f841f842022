package gocd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(srv.URL, logger), srv
}

func dashboardHandler(t *testing.T, body string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dashboard" {
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}
}

func strptr(s string) *string { return &s }

func TestListPipelines_ShapeVariants(t *testing.T) {
	// The same logical dashboard in all four upstream shapes must normalize
	// to the same canonical list.
	want := []Pipeline{
		{Name: "build", Group: "main", Locked: false, PauseInfo: &PauseInfo{Paused: false}},
		{Name: "deploy", Group: "main", Locked: true, PauseInfo: &PauseInfo{
			Paused:      true,
			PausedBy:    strptr("admin"),
			PauseReason: strptr("maintenance"),
		}},
	}

	entries := `[
		{"name": "build", "locked": false, "pause_info": {"paused": false, "paused_by": null, "pause_reason": null}},
		{"name": "deploy", "locked": true, "pause_info": {"paused": true, "paused_by": "admin", "pause_reason": "maintenance"}}
	]`

	tests := []struct {
		name string
		body string
	}{
		{
			name: "embedded groups, embedded pipelines",
			body: `{"_embedded": {"pipeline_groups": [{"name": "main", "_embedded": {"pipelines": ` + entries + `}}]}}`,
		},
		{
			name: "embedded groups, direct pipelines",
			body: `{"_embedded": {"pipeline_groups": [{"name": "main", "pipelines": ` + entries + `}]}}`,
		},
		{
			name: "top-level groups, embedded pipelines",
			body: `{"pipeline_groups": [{"name": "main", "_embedded": {"pipelines": ` + entries + `}}]}`,
		},
		{
			name: "top-level groups, direct pipelines",
			body: `{"pipeline_groups": [{"name": "main", "pipelines": ` + entries + `}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, dashboardHandler(t, tt.body))

			got, err := client.ListPipelines(context.Background(), "token")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestListPipelines_NameListShape(t *testing.T) {
	body := `{"_embedded": {"pipeline_groups": [{"name": "legacy", "pipelines": ["alpha", "beta"]}]}}`
	client, _ := newTestClient(t, dashboardHandler(t, body))

	got, err := client.ListPipelines(context.Background(), "token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Pipeline{
		{Name: "alpha", Group: "legacy", Locked: false, PauseInfo: nil},
		{Name: "beta", Group: "legacy", Locked: false, PauseInfo: nil},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestListPipelines_MissingPauseInfo(t *testing.T) {
	// Object entries without pause_info keep PauseInfo nil, same as names
	body := `{"_embedded": {"pipeline_groups": [{"name": "g", "pipelines": [{"name": "p", "locked": true}]}]}}`
	client, _ := newTestClient(t, dashboardHandler(t, body))

	got, err := client.ListPipelines(context.Background(), "token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 pipeline, got %d", len(got))
	}
	if !got[0].Locked {
		t.Error("expected locked=true")
	}
	if got[0].PauseInfo != nil {
		t.Errorf("expected nil pauseInfo, got %+v", got[0].PauseInfo)
	}
}

func TestListPipelines_MissingGroupsField(t *testing.T) {
	client, _ := newTestClient(t, dashboardHandler(t, `{"_embedded": {}}`))

	_, err := client.ListPipelines(context.Background(), "token")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestListPipelines_GroupOrderPreserved(t *testing.T) {
	body := `{"_embedded": {"pipeline_groups": [
		{"name": "b-group", "pipelines": ["b1"]},
		{"name": "empty-group", "pipelines": []},
		{"name": "a-group", "pipelines": ["a1", "a2"]}
	]}}`
	client, _ := newTestClient(t, dashboardHandler(t, body))

	got, err := client.ListPipelines(context.Background(), "token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := make([]string, len(got))
	for i, p := range got {
		names[i] = p.Group + "/" + p.Name
	}
	want := []string{"b-group/b1", "a-group/a1", "a-group/a2"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("got order %v, want %v", names, want)
	}
}

func TestListPipelines_EmptyDashboard(t *testing.T) {
	body := `{"_embedded": {"pipeline_groups": []}}`
	client, _ := newTestClient(t, dashboardHandler(t, body))

	got, err := client.ListPipelines(context.Background(), "token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("expected no pipelines, got %d", len(got))
	}
}

func TestListPipelines_PausedWithoutDetails(t *testing.T) {
	// paused=true with null actor/reason must still materialize the fields
	body := `{"_embedded": {"pipeline_groups": [{"name": "g", "pipelines": [
		{"name": "p", "locked": false, "pause_info": {"paused": true, "paused_by": null, "pause_reason": null}}
	]}]}}`
	client, _ := newTestClient(t, dashboardHandler(t, body))

	got, err := client.ListPipelines(context.Background(), "token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pi := got[0].PauseInfo
	if pi == nil || !pi.Paused {
		t.Fatalf("expected paused pauseInfo, got %+v", pi)
	}
	if pi.PausedBy != nil || pi.PauseReason != nil {
		t.Errorf("expected null actor and reason, got %+v", pi)
	}
}
