package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jmylchreest/tincture/internal/mix"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(mix.New(), nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(url) // #nosec G107 - test server URL
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, body
}

func TestMix(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "srgb midpoint",
			query: "a=ff0000&b=0000ff&algo=srgb&n=3",
			want:  []string{"#ff0000", "#800080", "#0000ff"},
		},
		{
			name:  "short hex and hash",
			query: "a=%23f00&b=00f&n=3",
			want:  []string{"#ff0000", "#800080", "#0000ff"},
		},
		{
			name:  "n clamped low",
			query: "algo=srgb&n=0",
			want:  []string{"#ff0000", "#0000ff"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, srv.URL+"/mix?"+tt.query)
			if status != http.StatusOK {
				t.Fatalf("status = %d, body = %s", status, body)
			}
			var got []string
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("palette mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMixDefaults(t *testing.T) {
	srv := newTestServer(t)
	status, body := get(t, srv.URL+"/mix")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	var got []string
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != DefaultSteps || got[0] != "#ff0000" || got[len(got)-1] != "#0000ff" {
		t.Errorf("default palette = %v", got)
	}
}

func TestMixLengths(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		query string
		want  int
	}{
		{"algo=hct_tone&a=3366cc&n=2", mix.MinRampSteps},
		{"algo=hct_tone&a=3366cc&n=9&schedule=shadow&gamma=2", 9},
		{"algo=mix_hct&n=100000", mix.MaxSteps},
		{"algo=km_sub&n=5", 5},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			status, body := get(t, srv.URL+"/mix?"+tt.query)
			if status != http.StatusOK {
				t.Fatalf("status = %d, body = %s", status, body)
			}
			var got []string
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestMixErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name      string
		query     string
		wantError string
	}{
		{"bad colour", "a=zzzzzz", "invalid color: "},
		{"bad second colour", "b=12", "invalid color: "},
		{"non-integer n", "n=abc", "n must be an integer"},
		{"unknown algorithm", "algo=nope", "unknown algorithm 'nope'"},
		{"unknown method", "method=bounce", "unknown interpolation method"},
		{"unknown hue", "algo=hct&hue=sideways", "unknown hue policy"},
		{"unknown schedule", "algo=hct_tone&schedule=zigzag", "unknown schedule"},
		{"bad gamma", "algo=hct_tone&gamma=x", "gamma must be a number"},
		{"NaN gamma", "algo=hct_tone&schedule=shadow&gamma=NaN", "gamma must be a finite number"},
		{"infinite gamma", "algo=hct_tone&gamma=Inf", "gamma must be a finite number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, srv.URL+"/mix?"+tt.query)
			if status != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", status, body)
			}
			var got map[string]any
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			msg, _ := got["error"].(string)
			if !strings.Contains(msg, tt.wantError) {
				t.Errorf("error = %q, want containing %q", msg, tt.wantError)
			}
		})
	}
}

func TestMixUnknownAlgorithmListsSupported(t *testing.T) {
	srv := newTestServer(t)
	_, body := get(t, srv.URL+"/mix?algo=nope")
	var got struct {
		Supported []string `json:"supported"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(mix.AlgorithmNames(), got.Supported); diff != "" {
		t.Errorf("supported mismatch (-want +got):\n%s", diff)
	}
}

func TestAlgorithmsAndHealth(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv.URL+"/algorithms")
	if status != http.StatusOK {
		t.Fatalf("algorithms status = %d", status)
	}
	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(mix.AlgorithmNames(), names); diff != "" {
		t.Errorf("algorithms mismatch (-want +got):\n%s", diff)
	}

	status, body = get(t, srv.URL+"/healthz")
	if status != http.StatusOK || string(body) != "ok" {
		t.Errorf("healthz = %d %q", status, body)
	}

	resp, err := http.Post(srv.URL+"/mix", "text/plain", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST /mix status = %d, want 405", resp.StatusCode)
	}
}

func TestServeShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(mix.New(), nil).Serve(ctx, ln)
	}()

	status, _ := get(t, "http://"+ln.Addr().String()+"/healthz")
	if status != http.StatusOK {
		t.Fatalf("healthz status = %d", status)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}
