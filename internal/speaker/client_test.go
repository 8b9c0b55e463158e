package speaker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetVolume(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/v1/volume" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]int{"volume": 42})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	got, err := c.GetVolume(context.Background())
	if err != nil {
		t.Fatalf("GetVolume: %v", err)
	}
	if got != 42 {
		t.Fatalf("GetVolume = %d, want 42", got)
	}
}

func TestSetVolumeSendsBody(t *testing.T) {
	var gotMethod, gotPath, gotType string
	var gotBody volumePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if err := c.SetVolume(context.Background(), 65); err != nil {
		t.Fatalf("SetVolume: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/v1/volume" {
		t.Fatalf("request = %s %s, want PUT /api/v1/volume", gotMethod, gotPath)
	}
	if gotType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", gotType)
	}
	if gotBody.Volume != 65 {
		t.Fatalf("body volume = %d, want 65", gotBody.Volume)
	}
}

func TestMuteRoundTrip(t *testing.T) {
	muted := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/mute" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		switch r.Method {
		case http.MethodPut:
			var p mutePayload
			_ = json.NewDecoder(r.Body).Decode(&p)
			muted = p.Muted
			w.WriteHeader(http.StatusNoContent)
		default:
			_ = json.NewEncoder(w).Encode(mutePayload{Muted: muted})
		}
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ctx := context.Background()

	if err := c.SetMuted(ctx, true); err != nil {
		t.Fatalf("SetMuted: %v", err)
	}
	got, err := c.GetMuted(ctx)
	if err != nil {
		t.Fatalf("GetMuted: %v", err)
	}
	if !got {
		t.Fatal("GetMuted = false, want true after SetMuted(true)")
	}
}

func TestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.GetVolume(context.Background()); err == nil {
		t.Fatal("GetVolume succeeded against a 500 response")
	}
	if err := c.SetVolume(context.Background(), 10); err == nil {
		t.Fatal("SetVolume succeeded against a 500 response")
	}
}

func TestNewClientAddressParsing(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
		want    string
	}{
		{"empty", "", true, ""},
		{"blank", "   ", true, ""},
		{"bare host", "192.168.1.40", false, "http://192.168.1.40"},
		{"host and port", "192.168.1.40:8080", false, "http://192.168.1.40:8080"},
		{"explicit scheme", "https://speaker.local", false, "https://speaker.local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.address)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewClient(%q) succeeded, want error", tt.address)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewClient(%q): %v", tt.address, err)
			}
			if got := c.baseURL.String(); got != tt.want {
				t.Fatalf("base URL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNilClientGuards(t *testing.T) {
	var c *Client
	ctx := context.Background()

	if _, err := c.GetVolume(ctx); err == nil || !strings.Contains(err.Error(), "nil") {
		t.Fatalf("GetVolume on nil client: %v", err)
	}
	if err := c.SetVolume(ctx, 10); err == nil {
		t.Fatal("SetVolume on nil client succeeded")
	}
	if _, err := c.GetMuted(ctx); err == nil {
		t.Fatal("GetMuted on nil client succeeded")
	}
	if err := c.SetMuted(ctx, true); err == nil {
		t.Fatal("SetMuted on nil client succeeded")
	}
}
