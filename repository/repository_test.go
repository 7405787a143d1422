// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mdhender/pkr/repository"
	"github.com/spf13/afero"
)

func TestExtractMetadata(t *testing.T) {
	text := "# Modern JavaScript\n.tags: js web\n.public: true\n\nSome text.\n.draft:yes\n"
	meta, body := repository.ExtractMetadata(text)

	wantMeta := map[string]string{
		"title":  "Modern JavaScript",
		"tags":   "js web",
		"public": "true",
		"draft":  "yes",
	}
	if diff := cmp.Diff(wantMeta, meta); diff != "" {
		t.Errorf("meta mismatch (-want +got):\n%s", diff)
	}
	if want := "# Modern JavaScript\n\nSome text.\n"; body != want {
		t.Errorf("body: got %q, want %q", body, want)
	}
}

func TestExtractMetadata_Edges(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantTitle string
		wantBody  string
	}{
		{"empty", "", "", ""},
		{"no space after hash", "#Title\nx", "Title", "#Title\nx"},
		{"heading not on first line", "intro\n# Later\n", "", "intro\n# Later\n"},
		{"title override", "# Heading\n.title: Better\n", "Better", "# Heading\n"},
		{"empty value is not front matter", ".key:\n", "", ".key:\n"},
		{"indented is not front matter", " .key: v\n", "", " .key: v\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			meta, body := repository.ExtractMetadata(tc.text)
			if meta["title"] != tc.wantTitle {
				t.Errorf("title: got %q, want %q", meta["title"], tc.wantTitle)
			}
			if body != tc.wantBody {
				t.Errorf("body: got %q, want %q", body, tc.wantBody)
			}
		})
	}
}

func TestNewNote(t *testing.T) {
	mod := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	n := repository.NewNote("gear.md", ".tags: hiking  camping\n.public: true\n* socks\n", mod)
	if n.Slug != "gear" {
		t.Errorf("Slug: got %q, want %q", n.Slug, "gear")
	}
	if n.Title != "gear" {
		t.Errorf("Title: got %q, want slug fallback %q", n.Title, "gear")
	}
	if !n.Public {
		t.Errorf("Public: got false, want true")
	}
	if diff := cmp.Diff([]string{"hiking", "camping"}, n.Tags); diff != "" {
		t.Errorf("Tags mismatch (-want +got):\n%s", diff)
	}
	if n.Body != "* socks\n" {
		t.Errorf("Body: got %q", n.Body)
	}
	if !n.ModTime.Equal(mod) {
		t.Errorf("ModTime: got %v, want %v", n.ModTime, mod)
	}

	if repository.NewNote("x.md", ".public: false\n", mod).Public {
		t.Errorf("Public: \".public: false\" made the note public")
	}
}

func newTestRepo(t *testing.T, files map[string]string, options ...repository.Option) *repository.Repository {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/notes", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for name, text := range files {
		if err := afero.WriteFile(fs, "/notes/"+name, []byte(text), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	repo, err := repository.New(fs, "/notes", options...)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	return repo
}

func TestRepository_List(t *testing.T) {
	repo := newTestRepo(t, map[string]string{
		"zebra.md":   "# Zebra\n",
		"apple.md":   "# Apple\n.public: true\n",
		"readme.txt": "not a note",
		".hidden.md": "# Hidden\n",
	})
	notes, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var slugs []string
	for _, n := range notes {
		slugs = append(slugs, n.Slug)
	}
	if diff := cmp.Diff([]string{"apple", "zebra"}, slugs); diff != "" {
		t.Errorf("slugs mismatch (-want +got):\n%s", diff)
	}
	if notes[0].Path != "/notes/apple.md" {
		t.Errorf("Path: got %q", notes[0].Path)
	}
}

func TestRepository_ListMissingDir(t *testing.T) {
	repo, err := repository.New(afero.NewMemMapFs(), "/nowhere")
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	_, err = repo.List(context.Background())
	var readErr *repository.ErrReadNote
	if !errors.As(err, &readErr) || readErr.Op != "list" {
		t.Errorf("List: got %v, want *ErrReadNote{Op: list}", err)
	}
}

func TestRepository_Load(t *testing.T) {
	repo := newTestRepo(t, map[string]string{
		"trip.md": "# Trip\r\n.public: true\r\nday one\r\n",
	}, repository.WithStripCR(true))
	ctx := context.Background()

	n, err := repo.Load(ctx, "trip")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n.Title != "Trip" || !n.Public {
		t.Errorf("got title %q public %v", n.Title, n.Public)
	}
	if n.Body != "# Trip\nday one\n" {
		t.Errorf("Body: got %q", n.Body)
	}

	if _, err := repo.Load(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("missing: got %v, want ErrNotFound", err)
	}
	for _, slug := range []string{"../etc/passwd", ".hidden", "a/b", ""} {
		if _, err := repo.Load(ctx, slug); !errors.Is(err, repository.ErrInvalidSlug) {
			t.Errorf("%q: got %v, want ErrInvalidSlug", slug, err)
		}
	}
}

func TestRepository_LoadCanceled(t *testing.T) {
	repo := newTestRepo(t, map[string]string{"a.md": "a"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := repo.Load(ctx, "a"); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestRepository_Save(t *testing.T) {
	repo := newTestRepo(t, map[string]string{"old.md": "# Old\n"})
	ctx := context.Background()

	n, err := repo.Save(ctx, "new", []byte("# New\n.tags: a\n"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if n.Title != "New" || !n.HasTag("a") {
		t.Errorf("saved note: %+v", n)
	}
	notes, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(notes) != 2 {
		t.Errorf("got %d notes, want 2", len(notes))
	}
	if _, err := repo.Save(ctx, "../escape", []byte("x")); !errors.Is(err, repository.ErrInvalidSlug) {
		t.Errorf("got %v, want ErrInvalidSlug", err)
	}
}
