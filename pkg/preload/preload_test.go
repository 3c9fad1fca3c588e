package preload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestPreloadAlwaysDone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("jpegbytes"))
	}))
	defer srv.Close()

	file := filepath.Join(t.TempDir(), "local.png")
	if err := os.WriteFile(file, []byte("0123456789"), 0644); err != nil {
		t.Fatal(err)
	}

	urls := []string{
		srv.URL + "/a.jpg",
		srv.URL + "/missing.jpg",
		"",
		"file://" + filepath.ToSlash(file),
		"http://127.0.0.1:1/unreachable.jpg",
	}

	p := New(WithLogger(log.New(io.Discard)))
	report := p.Preload(context.Background(), urls)

	if !report.Done {
		t.Fatal("report should be done")
	}
	if report.Loaded != 2 || report.Failed != 3 {
		t.Errorf("loaded=%d failed=%d, want 2 and 3", report.Loaded, report.Failed)
	}

	tests := []struct {
		index   int
		wantErr bool
		bytes   int64
	}{
		{0, false, 9},
		{1, true, 0},
		{2, true, 0},
		{3, false, 10},
		{4, true, 0},
	}
	for _, tt := range tests {
		r := report.Results[tt.index]
		if r.URL != urls[tt.index] {
			t.Errorf("result %d URL = %q", tt.index, r.URL)
		}
		if (r.Err != nil) != tt.wantErr {
			t.Errorf("result %d err = %v, wantErr %v", tt.index, r.Err, tt.wantErr)
		}
		if r.Bytes != tt.bytes {
			t.Errorf("result %d bytes = %d, want %d", tt.index, r.Bytes, tt.bytes)
		}
	}
}

func TestPreloadRespectsLimit(t *testing.T) {
	var active, peak atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := active.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		active.Add(-1)
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	urls := make([]string, 12)
	for i := range urls {
		urls[i] = srv.URL
	}

	report := New(WithLimit(2), WithLogger(log.New(io.Discard))).Preload(context.Background(), urls)
	if report.Loaded != 12 {
		t.Errorf("loaded = %d", report.Loaded)
	}
	if peak.Load() > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", peak.Load())
	}
}

func TestPreloadEmpty(t *testing.T) {
	report := New().Preload(context.Background(), nil)
	if !report.Done || report.Loaded != 0 || report.Failed != 0 {
		t.Errorf("report = %+v", report)
	}
}
