package git

import (
	"context"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/tulip/cargo-bitbake/pkg/errors"
)

// AutoRev makes BitBake follow the latest revision of a branch.
const AutoRev = "${AUTOREV}"

// DefaultRemote is the remote whose URL becomes the project URI.
const DefaultRemote = "origin"

// ProjectRepo describes where the project being packaged comes from.
type ProjectRepo struct {
	// URI is the fetcher line for the project itself, already normalised
	// and carrying ;branch= or ;nobranch=1. Empty when unknown.
	URI string
	// Rev is the commit id of HEAD, or AutoRev when unknown.
	Rev string
	// Tag reports whether HEAD is exactly at a tag.
	Tag bool
}

// DefaultProjectRepo is used when the project is not inside a git checkout.
func DefaultProjectRepo() ProjectRepo {
	return ProjectRepo{Rev: AutoRev}
}

// Inspector derives a ProjectRepo from a directory.
type Inspector interface {
	Inspect(ctx context.Context, dir string) (ProjectRepo, error)
}

// GoGitInspector reads repository facts with go-git, so no git binary is
// required on the build host.
type GoGitInspector struct {
	// Prefix is the fetcher the project URI is written for.
	Prefix Prefix
	// Remote defaults to DefaultRemote.
	Remote string
}

// Inspect opens the repository containing dir (searching parent
// directories) and reports its remote URL, HEAD revision and tag state.
func (g *GoGitInspector) Inspect(ctx context.Context, dir string) (ProjectRepo, error) {
	if err := ctx.Err(); err != nil {
		return ProjectRepo{}, err
	}

	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ProjectRepo{}, errors.Wrap(errors.ErrCodeInvalidRepoFact, err, "unable to open git repository at %s", dir)
	}

	remoteName := g.Remote
	if remoteName == "" {
		remoteName = DefaultRemote
	}
	remote, err := repo.Remote(remoteName)
	if err != nil {
		return ProjectRepo{}, errors.Wrap(errors.ErrCodeInvalidRepoFact, err, "unable to find remote %q", remoteName)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return ProjectRepo{}, errors.New(errors.ErrCodeInvalidRepoFact, "remote %q has no URL", remoteName)
	}

	head, err := repo.Head()
	if err != nil {
		return ProjectRepo{}, errors.Wrap(errors.ErrCodeInvalidRepoFact, err, "unable to resolve HEAD")
	}

	uri := YoctoURL(urls[0], "", g.Prefix)
	if head.Name().IsBranch() {
		uri += ";branch=" + head.Name().Short()
	} else {
		uri += ";nobranch=1"
	}

	tagged, err := pointsAtTag(repo, head.Hash())
	if err != nil {
		return ProjectRepo{}, errors.Wrap(errors.ErrCodeInvalidRepoFact, err, "unable to list tags")
	}

	return ProjectRepo{
		URI: uri,
		Rev: head.Hash().String(),
		Tag: tagged,
	}, nil
}

// pointsAtTag reports whether any lightweight or annotated tag resolves to
// the commit hash.
func pointsAtTag(repo *gogit.Repository, hash plumbing.Hash) (bool, error) {
	iter, err := repo.Tags()
	if err != nil {
		return false, err
	}
	defer iter.Close()

	found := false
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		if tag, err := repo.TagObject(target); err == nil {
			commit, err := tag.Commit()
			if err != nil {
				// annotated tag of a tree or blob
				return nil
			}
			target = commit.Hash
		}
		if target == hash {
			found = true
			return storer.ErrStop
		}
		return nil
	})
	if err != nil && err != storer.ErrStop {
		return false, err
	}
	return found, nil
}
