package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/mosaic/pkg/cache"
	mosaicerrors "github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/httputil"
)

func testCache(t *testing.T) cache.Cache {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestNewClient(t *testing.T) {
	c := testCache(t)

	headers := map[string]string{"Authorization": "key"}
	client := NewClient(c, time.Hour, headers)

	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.cache != c {
		t.Error("NewClient() cache not set correctly")
	}
	if client.headers["Authorization"] != "key" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestNewClientNilCache(t *testing.T) {
	client := NewClient(nil, 0, nil)
	if _, ok := client.cache.(*cache.NullCache); !ok {
		t.Errorf("nil cache should become NullCache, got %T", client.cache)
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	var accept, agent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		accept = r.Header.Get("Accept")
		agent = r.Header.Get("User-Agent")
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client := NewClient(testCache(t), time.Hour, nil)
	client.SetHTTPClient(server.Client())

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
	if accept != "application/json" {
		t.Errorf("Accept = %q", accept)
	}
	if agent == "" {
		t.Error("User-Agent should be set")
	}
}

func TestClientGetWithHeadersOverridesDefaults(t *testing.T) {
	var receivedHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedHeader = r.Header.Get("X-Override")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(testCache(t), time.Hour, map[string]string{"X-Override": "default"})

	var resp map[string]string
	err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{"X-Override": "overridden"}, &resp)
	if err != nil {
		t.Fatalf("GetWithHeaders() error: %v", err)
	}
	if receivedHeader != "overridden" {
		t.Errorf("header = %q, want %q", receivedHeader, "overridden")
	}
}

func TestClientGet404(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client := NewClient(testCache(t), time.Hour, nil)

	var resp map[string]string
	err := client.Get(context.Background(), server.URL, &resp)
	if !mosaicerrors.Is(err, mosaicerrors.ErrCodeNotFound) {
		t.Errorf("Get() error = %v, want NOT_FOUND", err)
	}
}

func TestClientGetBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client := NewClient(nil, 0, nil)
	var resp map[string]string
	err := client.Get(context.Background(), server.URL, &resp)
	if !mosaicerrors.Is(err, mosaicerrors.ErrCodeInternal) {
		t.Errorf("Get() error = %v, want INTERNAL_ERROR", err)
	}
}

func TestClientCached(t *testing.T) {
	ctx := context.Background()
	client := NewClient(testCache(t), time.Hour, nil)

	type testData struct {
		Value string `json:"value"`
	}

	fetchCount := 0
	fetch := func(v *testData) func() error {
		return func() error {
			fetchCount++
			*v = testData{Value: "fetched"}
			return nil
		}
	}

	var first testData
	if err := client.Cached(ctx, "page", "k", false, &first, fetch(&first)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}

	var second testData
	if err := client.Cached(ctx, "page", "k", false, &second, fetch(&second)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if fetchCount != 1 {
		t.Errorf("fetch count = %d, want 1", fetchCount)
	}
	if second.Value != "fetched" {
		t.Errorf("cached value = %q", second.Value)
	}

	var third testData
	if err := client.Cached(ctx, "page", "k", true, &third, fetch(&third)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if fetchCount != 2 {
		t.Errorf("refresh should fetch again, count = %d", fetchCount)
	}
}

func TestClientCachedFetchError(t *testing.T) {
	client := NewClient(testCache(t), time.Hour, nil)

	fetchCount := 0
	notFound := mosaicerrors.New(mosaicerrors.ErrCodeNotFound, "missing")
	var value string
	err := client.Cached(context.Background(), "photo", "missing", false, &value, func() error {
		fetchCount++
		return notFound
	})
	if !errors.Is(err, notFound) {
		t.Errorf("Cached() error = %v", err)
	}
	if fetchCount != 1 {
		t.Errorf("non-retryable error should not retry, count = %d", fetchCount)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		wantCode  mosaicerrors.Code
		retryable bool
	}{
		{"200 OK", 200, "", false},
		{"204 No Content", 204, "", false},
		{"401 Unauthorized", 401, mosaicerrors.ErrCodeUnauthorized, false},
		{"404 Not Found", 404, mosaicerrors.ErrCodeNotFound, false},
		{"429 Too Many Requests", 429, mosaicerrors.ErrCodeRateLimited, true},
		{"500 Internal Server Error", 500, mosaicerrors.ErrCodeNetwork, true},
		{"503 Service Unavailable", 503, mosaicerrors.ErrCodeNetwork, true},
		{"400 Bad Request", 400, mosaicerrors.ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(tt.code, http.Header{})
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("checkStatus() unexpected error: %v", err)
				}
				return
			}
			if got := mosaicerrors.GetCode(err); got != tt.wantCode {
				t.Errorf("checkStatus() code = %q, want %q", got, tt.wantCode)
			}
			if httputil.IsRetryable(err) != tt.retryable {
				t.Errorf("checkStatus() retryable = %v, want %v", !tt.retryable, tt.retryable)
			}
		})
	}
}

func TestCheckStatusRetryAfter(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "7")
	err := checkStatus(429, h)

	var rl *mosaicerrors.RateLimitedError
	if !errors.As(err, &rl) {
		t.Fatalf("checkStatus(429) = %T", err)
	}
	if rl.RetryAfter != 7 {
		t.Errorf("RetryAfter = %d, want 7", rl.RetryAfter)
	}
}
