package catalogue

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultAPIBase {
		t.Fatalf("host = %q, want %q", u.Host, defaultAPIBase)
	}

	u, err = parseBaseURL("https://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c, err := NewClient(server.URL, "", 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func TestClient_SearchSendsMultipartAndDecodesMatch(t *testing.T) {
	t.Parallel()

	var gotName, gotType, gotBody, gotRequestID, gotUserAgent string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/search" {
			http.NotFound(w, r)
			return
		}
		gotRequestID = r.Header.Get(RequestIDHeader)
		gotUserAgent = r.Header.Get("User-Agent")
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		gotName = header.Filename
		gotType = header.Header.Get("Content-Type")
		gotBody = string(data)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"similarity": 0.91,
				"image_url":  "/x.jpg",
				"image": map[string]any{
					"id": 3, "uuid": "u-3", "filename": "a.jpg", "info": "wallet", "created_at": "2024-01-01T00:00:00Z",
				},
			},
		})
	})

	ctx := WithRequestID(context.Background(), "req-1")
	match, err := c.Search(ctx, File{Name: "photo.jpg", MediaType: "image/jpeg", Data: []byte("jpegbytes")})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if match == nil {
		t.Fatalf("Search returned nil match")
	}
	if match.Similarity != 0.91 || match.ImageURL != "/x.jpg" || match.Image.Filename != "a.jpg" || match.Image.Description() != "wallet" {
		t.Fatalf("match = %#v", match)
	}
	if gotName != "photo.jpg" || gotType != "image/jpeg" || gotBody != "jpegbytes" {
		t.Fatalf("multipart part = (%q, %q, %q)", gotName, gotType, gotBody)
	}
	if gotRequestID != "req-1" {
		t.Fatalf("request id header = %q, want req-1", gotRequestID)
	}
	if !strings.HasPrefix(gotUserAgent, "lostfound/") {
		t.Fatalf("User-Agent = %q, want lostfound/*", gotUserAgent)
	}
}

func TestClient_SearchNullDataIsNoMatch(t *testing.T) {
	t.Parallel()

	cases := map[string]any{
		"null data":  map[string]any{"success": true, "data": nil},
		"no data":    map[string]any{"success": true, "message": "empty"},
		"null image": map[string]any{"success": true, "data": map[string]any{"similarity": 0, "image": nil}},
	}
	for name, payload := range cases {
		payload := payload
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, payload)
			})
			match, err := c.Search(context.Background(), File{Name: "a.png", MediaType: "image/png"})
			if err != nil {
				t.Fatalf("Search returned error: %v", err)
			}
			if match != nil {
				t.Fatalf("Search match = %#v, want nil", match)
			}
		})
	}
}

func TestClient_FailureMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		payload    any
		raw        string
		wantStatus int
		wantMsg    string
	}{
		{"error field on 4xx", http.StatusBadRequest, map[string]any{"error": "unsupported format"}, "", 400, "unsupported format"},
		{"success false uses message", http.StatusOK, map[string]any{"success": false, "message": "engine busy"}, "", 200, "engine busy"},
		{"error wins over message", http.StatusOK, map[string]any{"success": false, "message": "m", "error": "e"}, "", 200, "e"},
		{"bare 500 falls back", http.StatusInternalServerError, nil, "oops", 500, "Upload failed"},
		{"non-json 2xx falls back", http.StatusOK, nil, "<html>", 200, "Upload failed"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.payload != nil {
					writeJSON(w, tt.status, tt.payload)
					return
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.raw))
			})
			err := c.Upload(context.Background(), File{Name: "img.png", MediaType: "image/png"}, "")
			var failure *Failure
			if !errors.As(err, &failure) {
				t.Fatalf("Upload error = %v, want *Failure", err)
			}
			if failure.Status != tt.wantStatus || failure.Message != tt.wantMsg || failure.Op != OpUpload {
				t.Fatalf("failure = %#v, want status %d message %q", failure, tt.wantStatus, tt.wantMsg)
			}
			if got := Reason(err, OpUpload); got != tt.wantMsg {
				t.Fatalf("Reason = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestClient_TransportErrorIsFailure(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", "", time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.List(context.Background())
	var failure *Failure
	if !errors.As(err, &failure) {
		t.Fatalf("List error = %v, want *Failure", err)
	}
	if failure.Status != 0 || failure.Message != OpList.Fallback() || failure.Err == nil {
		t.Fatalf("failure = %#v", failure)
	}
}

func TestClient_UploadSendsInfoField(t *testing.T) {
	t.Parallel()

	var gotInfo string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/upload" {
			http.NotFound(w, r)
			return
		}
		gotInfo = r.FormValue("info")
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "ok"})
	})
	if err := c.Upload(context.Background(), File{Name: "img.png", MediaType: "image/png", Data: []byte{1}}, "blue backpack"); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if gotInfo != "blue backpack" {
		t.Fatalf("info = %q, want blue backpack", gotInfo)
	}
}

func TestClient_ListAndDelete(t *testing.T) {
	t.Parallel()

	var deleted string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/images":
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": []map[string]any{
				{"id": 7, "uuid": "u7", "filename": "Bag.PNG", "info": nil, "created_at": "2024-01-01T08:30:00"},
				{"id": 8, "uuid": "u8", "filename": "keys.jpg", "info": "keys", "created_at": "2024-01-02T00:00:00"},
			}})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/images/7":
			deleted = "7"
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
		case r.Method == http.MethodDelete:
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})
		default:
			http.NotFound(w, r)
		}
	})

	entries, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != 7 || entries[0].Info != nil || entries[1].Description() != "keys" {
		t.Fatalf("entries = %#v", entries)
	}
	if got := c.AssetURL(entries[0]); !strings.HasSuffix(got, "/static/uploads/u7.png") {
		t.Fatalf("AssetURL = %q, want suffix /static/uploads/u7.png", got)
	}

	if err := c.Delete(context.Background(), 7); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted != "7" {
		t.Fatalf("delete not issued for id 7")
	}
	err = c.Delete(context.Background(), 9)
	if got := Reason(err, OpDelete); got != "not found" {
		t.Fatalf("Delete(9) reason = %q, want not found", got)
	}
	if err := c.Delete(context.Background(), 0); err == nil {
		t.Fatalf("Delete(0) returned nil error, want error")
	}
}

func TestClient_ResolveURL(t *testing.T) {
	c, err := NewClient("http://example.com:5001", "assets/", 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if got := c.ResolveURL("/x.jpg"); got != "http://example.com:5001/x.jpg" {
		t.Fatalf("ResolveURL = %q", got)
	}
	if got := c.ResolveURL(""); got != "" {
		t.Fatalf("ResolveURL(empty) = %q, want empty", got)
	}
	if got := c.AssetURL(Entry{UUID: "abc", Filename: "x.JPEG"}); got != "http://example.com:5001/assets/abc.jpeg" {
		t.Fatalf("AssetURL = %q", got)
	}
}
