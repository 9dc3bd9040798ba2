package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewFileStore(path)
	ctx := context.Background()

	rec, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if rec != nil {
		t.Fatalf("missing mirror should load as nil, got %+v", rec)
	}

	want := domain.SessionRecord{
		Authenticated: true,
		Token:         "tok-abc",
		User:          &domain.User{ID: 4, Username: "chw.wanjiku"},
	}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec == nil || !rec.Authenticated || rec.Token != "tok-abc" {
		t.Fatalf("loaded %+v, want %+v", rec, want)
	}
	if rec.User == nil || rec.User.Username != "chw.wanjiku" {
		t.Fatalf("loaded user %+v", rec.User)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	rec, err = s.Load(ctx)
	if err != nil || rec != nil {
		t.Fatalf("after clear: rec=%+v err=%v", rec, err)
	}
	// Clearing twice is fine.
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestFileStoreCorruptMirrorTreatedAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewFileStore(path)
	rec, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec != nil {
		t.Fatalf("corrupt mirror should load as nil, got %+v", rec)
	}
}
