package deps

import "fmt"

// Kind identifies where a resolved dependency is fetched from.
type Kind int

const (
	KindRegistry Kind = iota // default package registry (crates.io)
	KindPath                 // local path inside the root package's tree
	KindGit                  // git repository
	KindOther                // any other remote archive URL
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindRegistry:
		return "registry"
	case KindPath:
		return "path"
	case KindGit:
		return "git"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Source is the origin of a resolved dependency. The set of implementations
// is closed: [RegistrySource], [PathSource], [GitSource] and [OtherSource].
type Source interface {
	Kind() Kind
	isSource()
}

// RegistrySource marks a dependency fetched from the default registry.
type RegistrySource struct{}

// PathSource marks a dependency that ships inside the root package's tree.
type PathSource struct{}

// GitSource is a dependency checked out from a git repository.
// Reference is nil only for malformed resolver output.
type GitSource struct {
	URL       string
	Reference GitReference
}

// OtherSource is a dependency fetched from an arbitrary URL.
type OtherSource struct {
	URL string
}

func (RegistrySource) Kind() Kind { return KindRegistry }
func (PathSource) Kind() Kind     { return KindPath }
func (GitSource) Kind() Kind      { return KindGit }
func (OtherSource) Kind() Kind    { return KindOther }

func (RegistrySource) isSource() {}
func (PathSource) isSource()     {}
func (GitSource) isSource()      {}
func (OtherSource) isSource()    {}

// GitReference selects what a git dependency is pinned to. Implementations:
// [GitTag], [GitRev], [GitBranch] and [DefaultBranch].
type GitReference interface {
	isGitReference()
	String() string
}

// GitTag pins a git dependency to a tag.
type GitTag string

// GitRev pins a git dependency to a revision (commit id or ref).
type GitRev string

// GitBranch tracks a named branch.
type GitBranch string

// DefaultBranch tracks whatever the repository's default branch is.
type DefaultBranch struct{}

func (GitTag) isGitReference()        {}
func (GitRev) isGitReference()        {}
func (GitBranch) isGitReference()     {}
func (DefaultBranch) isGitReference() {}

func (t GitTag) String() string      { return "tag=" + string(t) }
func (r GitRev) String() string      { return "rev=" + string(r) }
func (b GitBranch) String() string   { return "branch=" + string(b) }
func (DefaultBranch) String() string { return "default-branch" }
