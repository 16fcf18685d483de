package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/tulip/cargo-bitbake/pkg/errors"
)

func initRepo(t *testing.T) (string, *gogit.Repository, plumbing.Hash) {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[package]\nname = \"app\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add("Cargo.toml"); err != nil {
		t.Fatal(err)
	}
	hash, err := wt.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "dev", Email: "dev@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("failed to commit: %v", err)
	}

	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"https://github.com/example/app.git"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return dir, repo, hash
}

func TestInspectUntagged(t *testing.T) {
	dir, _, hash := initRepo(t)
	sub := filepath.Join(dir, "src")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := (&GoGitInspector{}).Inspect(context.Background(), sub)
	if err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}

	want := ProjectRepo{
		URI: "git://github.com/example/app.git;protocol=https;branch=master",
		Rev: hash.String(),
	}
	if got != want {
		t.Errorf("Inspect() = %+v, want %+v", got, want)
	}
}

func TestInspectTags(t *testing.T) {
	t.Run("lightweight", func(t *testing.T) {
		dir, repo, hash := initRepo(t)
		if _, err := repo.CreateTag("v1.0.0", hash, nil); err != nil {
			t.Fatal(err)
		}
		got, err := (&GoGitInspector{}).Inspect(context.Background(), dir)
		if err != nil {
			t.Fatalf("Inspect() error: %v", err)
		}
		if !got.Tag {
			t.Error("Tag = false, want true")
		}
	})

	t.Run("annotated", func(t *testing.T) {
		dir, repo, hash := initRepo(t)
		_, err := repo.CreateTag("v1.0.0", hash, &gogit.CreateTagOptions{
			Tagger:  &object.Signature{Name: "dev", Email: "dev@example.com", When: time.Now()},
			Message: "release",
		})
		if err != nil {
			t.Fatal(err)
		}
		got, err := (&GoGitInspector{Prefix: PrefixGitSubmodule}).Inspect(context.Background(), dir)
		if err != nil {
			t.Fatalf("Inspect() error: %v", err)
		}
		if !got.Tag {
			t.Error("Tag = false, want true")
		}
		if want := "gitsm://github.com/example/app.git;protocol=https;branch=master"; got.URI != want {
			t.Errorf("URI = %q, want %q", got.URI, want)
		}
	})
}

func TestInspectDetachedHead(t *testing.T) {
	dir, repo, hash := initRepo(t)
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if err := wt.Checkout(&gogit.CheckoutOptions{Hash: hash}); err != nil {
		t.Fatal(err)
	}

	got, err := (&GoGitInspector{}).Inspect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}
	if want := "git://github.com/example/app.git;protocol=https;nobranch=1"; got.URI != want {
		t.Errorf("URI = %q, want %q", got.URI, want)
	}
}

func TestInspectErrors(t *testing.T) {
	t.Run("not a repository", func(t *testing.T) {
		_, err := (&GoGitInspector{}).Inspect(context.Background(), t.TempDir())
		if !errors.Is(err, errors.ErrCodeInvalidRepoFact) {
			t.Errorf("Inspect() error = %v, want %s", err, errors.ErrCodeInvalidRepoFact)
		}
	})

	t.Run("missing remote", func(t *testing.T) {
		dir, _, _ := initRepo(t)
		_, err := (&GoGitInspector{Remote: "upstream"}).Inspect(context.Background(), dir)
		if !errors.Is(err, errors.ErrCodeInvalidRepoFact) {
			t.Errorf("Inspect() error = %v, want %s", err, errors.ErrCodeInvalidRepoFact)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := (&GoGitInspector{}).Inspect(ctx, t.TempDir()); err == nil {
			t.Error("Inspect() expected error for cancelled context")
		}
	})
}
