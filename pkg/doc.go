// Package pkg provides the core libraries for cargo-bitbake, which turns a
// Cargo package and its resolved lockfile into a BitBake recipe.
//
// # Overview
//
// A recipe needs three things the Cargo project already knows: where every
// crate comes from, what license the package is under, and which revision
// of the project itself to build. The packages under pkg answer those
// questions without resolving anything; Cargo.lock is taken as-is.
//
// # Architecture
//
//	Cargo.toml + Cargo.lock
//	         ↓
//	    [deps/rust] (load package metadata and resolved dependencies)
//	         ↓
//	    [srcuri] (classify each dependency into SRC_URI entries)
//	         ↓
//	    [git] + [license] (project repo, revision pinning, license files)
//	         ↓
//	    [render] (bind fields into templates, write <name>_<version>.bb)
//
// [pipeline] runs these stages in order for the CLI.
//
// # Main Packages
//
// [deps] - Package metadata, dependency sources and the [deps.Loader]
// interface. [deps/rust] implements it for Cargo.
//
// [srcuri] - Source Classifier: crate:// URIs for registry crates, pinned
// git:// URIs plus SRCREV and EXTRA_OECARGO_PATHS lines for git crates.
//
// [git] - Git URL normalisation into BitBake fetcher syntax, inspection of
// the project checkout and the PV_append revision pinning policy.
//
// [license] - License Resolver: splits the license expression and finds and
// checksums a file for each identifier.
//
// [render] - Recipe Renderer: single-pass {field} substitution that leaves
// BitBake ${VAR} references alone.
//
// [io] - JSON import/export of bound recipe fields.
//
// [errors] - Structured error codes shared by every package.
//
// [observability] - Hooks for stage timings and advisories.
//
// # Quick Start
//
//	logger := log.Default()
//	runner := pipeline.NewRunner(rust.NewLoader(logger), nil, logger)
//	result, err := runner.Generate(ctx, pipeline.Options{ManifestPath: "Cargo.toml"})
//	if err != nil {
//	    return err
//	}
//	for _, path := range result.Written {
//	    fmt.Println("Wrote:", path)
//	}
//
// # Testing
//
//	go test ./pkg/...
package pkg
