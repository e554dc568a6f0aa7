package capture

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestOptionsValidation(t *testing.T) {
	ctx := context.Background()
	if err := MonthPNG(ctx, Options{OutputPath: "x.png"}); err == nil {
		t.Error("missing URL accepted")
	}
	if err := MonthPNG(ctx, Options{URL: "http://127.0.0.1/"}); err == nil {
		t.Error("missing output path accepted")
	}

	o := Options{URL: "u", OutputPath: "p"}
	if err := o.normalize(); err != nil {
		t.Fatal(err)
	}
	if o.Width != DefaultWidth || o.Height != DefaultHeight || o.Timeout != DefaultTimeout {
		t.Errorf("defaults not applied: %+v", o)
	}
}

func TestAuthHeaders(t *testing.T) {
	if h := (Options{}).headers(); h != nil {
		t.Errorf("headers without credentials = %v", h)
	}

	h := Options{Username: "admin", Password: "secret"}.headers()
	req := httptest.NewRequest("GET", "/", nil)
	auth, _ := h["Authorization"].(string)
	req.Header.Set("Authorization", auth)
	user, pass, ok := req.BasicAuth()
	if !ok || user != "admin" || pass != "secret" {
		t.Errorf("Authorization %q decodes to %q/%q ok=%v", auth, user, pass, ok)
	}
}

func TestWriteAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preview.png")
	if err := writeAtomic(path, []byte("png")); err != nil {
		t.Fatal(err)
	}
	if err := writeAtomic(path, []byte("png2")); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != "png2" {
		t.Fatalf("read %q, %v", got, err)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestScheduler(t *testing.T) {
	if _, err := NewScheduler("every tuesday", Options{}, nil); err == nil {
		t.Fatal("invalid schedule accepted")
	}

	var outcomes []error
	s, err := NewScheduler("*/15 * * * *", Options{URL: "http://127.0.0.1/", OutputPath: "p.png"}, func(err error) {
		outcomes = append(outcomes, err)
	})
	if err != nil {
		t.Fatal(err)
	}
	var got Options
	s.run = func(_ context.Context, o Options) error {
		got = o
		return nil
	}
	if err := s.RunOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got.URL != "http://127.0.0.1/" || len(outcomes) != 1 || outcomes[0] != nil {
		t.Errorf("run with %+v, outcomes %v", got, outcomes)
	}

	s.Start()
	s.Stop(context.Background())
}
