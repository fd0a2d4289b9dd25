package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func echoBonusHandler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	defer r.Body.Close()

	if r.Method == http.MethodDelete {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(body)
}

func gzipBytes(t *testing.T, s string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(s)); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}
	return &buf
}

func TestGzipMiddleware(t *testing.T) {
	const payload = `{"bank_id":1,"title":"Total Checking","bonus_amount":300}`

	type want struct {
		statusCode      int
		contentEncoding string
		body            string
	}

	tests := []struct {
		name           string
		method         string
		compressBody   bool
		acceptEncoding string
		want           want
	}{
		{
			name:           "plain request, gzip response",
			method:         http.MethodPost,
			acceptEncoding: "gzip, deflate",
			want:           want{statusCode: http.StatusCreated, contentEncoding: "gzip", body: payload},
		},
		{
			name:         "gzip request, plain response",
			method:       http.MethodPost,
			compressBody: true,
			want:         want{statusCode: http.StatusCreated, body: payload},
		},
		{
			name:           "gzip both ways",
			method:         http.MethodPost,
			compressBody:   true,
			acceptEncoding: "gzip",
			want:           want{statusCode: http.StatusCreated, contentEncoding: "gzip", body: payload},
		},
		{
			name:           "no content is never encoded",
			method:         http.MethodDelete,
			acceptEncoding: "gzip",
			want:           want{statusCode: http.StatusNoContent},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader = strings.NewReader(payload)
			if tt.compressBody {
				body = gzipBytes(t, payload)
			}

			req := httptest.NewRequest(tt.method, "/api/bonuses", body)
			if tt.compressBody {
				req.Header.Set("Content-Encoding", "gzip")
			}
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rr := httptest.NewRecorder()

			GzipMiddleware(http.HandlerFunc(echoBonusHandler)).ServeHTTP(rr, req)

			if rr.Code != tt.want.statusCode {
				t.Fatalf("status = %d, want %d", rr.Code, tt.want.statusCode)
			}
			if got := rr.Header().Get("Content-Encoding"); got != tt.want.contentEncoding {
				t.Fatalf("Content-Encoding = %q, want %q", got, tt.want.contentEncoding)
			}

			var got []byte
			if tt.want.contentEncoding == "gzip" {
				zr, err := gzip.NewReader(rr.Body)
				if err != nil {
					t.Fatalf("open gzip response: %v", err)
				}
				got, err = io.ReadAll(zr)
				if err != nil {
					t.Fatalf("read gzip response: %v", err)
				}
			} else {
				got = rr.Body.Bytes()
			}

			if string(got) != tt.want.body {
				t.Fatalf("body = %q, want %q", got, tt.want.body)
			}
		})
	}
}

func TestGzipMiddleware_BrokenBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/banks", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	rr := httptest.NewRecorder()

	called := false
	GzipMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, req)

	if called {
		t.Fatal("handler must not run for a malformed gzip body")
	}
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
