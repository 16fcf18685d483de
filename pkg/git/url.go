package git

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tulip/cargo-bitbake/pkg/errors"
)

// Prefix selects the BitBake fetcher a normalised git URL is written for.
type Prefix int

const (
	// PrefixGit targets the plain git fetcher (git://). This is the default.
	PrefixGit Prefix = iota
	// PrefixGitSubmodule targets the gitsm fetcher, which also fetches submodules.
	PrefixGitSubmodule
)

// Scheme returns the fetcher scheme without "://".
func (p Prefix) Scheme() string {
	if p == PrefixGitSubmodule {
		return "gitsm"
	}
	return "git"
}

func (p Prefix) String() string { return p.Scheme() }

// ParsePrefix parses "git" (or "") and "gitsm".
func ParsePrefix(s string) (Prefix, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "git":
		return PrefixGit, nil
	case "gitsm":
		return PrefixGitSubmodule, nil
	default:
		return PrefixGit, errors.New(errors.ErrCodeInvalidInput, "unknown git prefix %q (available: git, gitsm)", s)
	}
}

// scpStyle matches git@github.com:owner/repo.git style remotes.
var scpStyle = regexp.MustCompile(`^[A-Za-z0-9._~-]+@[A-Za-z0-9.-]+:[^/]`)

// YoctoURL rewrites a git URL into the form the BitBake git fetcher expects:
//
//	https://github.com/o/r.git          -> git://github.com/o/r.git;protocol=https
//	git@github.com:o/r.git              -> git://git@github.com/o/r.git;protocol=ssh
//	git+https://host/r?branch=dev#abc   -> git://host/r;protocol=https;branch=dev
//
// Query parameters become ";key=value" fetcher parameters sorted by key.
// When name is non-empty ";name=<name>;destsuffix=<name>" is appended so
// several checkouts can share one WORKDIR. The result depends only on the
// arguments.
func YoctoURL(raw, name string, prefix Prefix) string {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "git+")
	s, _, _ = strings.Cut(s, "#")
	s, query, _ := strings.Cut(s, "?")

	if !strings.Contains(s, "://") && scpStyle.MatchString(s) {
		s = "ssh://" + strings.Replace(s, ":", "/", 1)
	}

	var b strings.Builder
	if scheme, rest, ok := strings.Cut(s, "://"); ok {
		b.WriteString(prefix.Scheme())
		b.WriteString("://")
		b.WriteString(rest)
		if scheme != "git" && scheme != "gitsm" {
			b.WriteString(";protocol=")
			b.WriteString(scheme)
		}
	} else {
		b.WriteString(s)
	}

	for _, p := range queryParams(query) {
		b.WriteString(";")
		b.WriteString(p)
	}

	if name != "" {
		b.WriteString(";name=")
		b.WriteString(name)
		b.WriteString(";destsuffix=")
		b.WriteString(name)
	}
	return b.String()
}

// queryParams returns the raw "key=value" pieces of a query, stably
// sorted by key. Values are not percent-decoded: a decoded ';' would split
// into an extra fetcher parameter.
func queryParams(query string) []string {
	var out []string
	for _, p := range strings.Split(query, "&") {
		if p != "" {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return queryKey(out[i]) < queryKey(out[j])
	})
	return out
}

func queryKey(param string) string {
	k, _, _ := strings.Cut(param, "=")
	return k
}
