package settings

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/openfroyo/argcheck/pkg/validation"
)

func TestWatcher_Check(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "name: api\n")
	meta := Meta{"name": validation.Required(validation.String)}

	res := NewWatcher([]string{path}, meta, nil).Check()
	if res.Err != nil {
		t.Fatalf("Check() error = %v", res.Err)
	}
	if res.Config["name"] != "api" {
		t.Errorf("Check() config = %v", res.Config)
	}

	res = NewWatcher([]string{path, dir + "/missing.yaml"}, meta, nil).Check()
	if res.Err == nil {
		t.Error("expected load error")
	}
}

func TestWatcher_Run(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "name: api\n")
	meta := Meta{"name": validation.Required(validation.String)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan Result, 16)
	done := make(chan error, 1)
	w := NewWatcher([]string{path}, meta, nil, WithDebounce(10*time.Millisecond))
	go func() {
		done <- w.Run(ctx, func(r Result) { results <- r })
	}()

	select {
	case r := <-results:
		if r.Err != nil {
			t.Fatalf("initial check error = %v", r.Err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for initial check")
	}

	if err := os.WriteFile(path, []byte("name: 42\n"), 0o600); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}

	select {
	case r := <-results:
		if r.Err == nil {
			t.Error("expected validation error after rewrite")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for re-check")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
