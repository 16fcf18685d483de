package deps_test

import (
	"fmt"

	"github.com/tulip/cargo-bitbake/pkg/deps"
)

func ExampleSource() {
	sources := []deps.Source{
		deps.RegistrySource{},
		deps.PathSource{},
		deps.GitSource{URL: "https://github.com/rust-lang/log", Reference: deps.GitBranch("master")},
		deps.OtherSource{URL: "https://example.com/foo-1.0.tar.gz"},
	}

	for _, src := range sources {
		switch s := src.(type) {
		case deps.GitSource:
			fmt.Println(s.Kind(), s.URL, s.Reference)
		case deps.OtherSource:
			fmt.Println(s.Kind(), s.URL)
		default:
			fmt.Println(s.Kind())
		}
	}
	// Output:
	// registry
	// path
	// git https://github.com/rust-lang/log branch=master
	// other https://example.com/foo-1.0.tar.gz
}

func ExampleProject_RelDir() {
	p := &deps.Project{
		Package:       deps.Package{Name: "app", Dir: "/src/ws/crates/app"},
		WorkspaceRoot: "/src/ws",
	}
	rel, _ := p.RelDir()
	fmt.Println(rel)
	// Output: crates/app
}
