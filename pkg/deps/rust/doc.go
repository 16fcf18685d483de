// Package rust loads a Cargo package and its resolved dependency graph.
//
// # Overview
//
// [CargoLoader] implements [deps.Loader]. It reads:
//
//   - Cargo.toml of the package (discovered upwards from the working
//     directory when no path is given), including metadata inherited from
//     [workspace.package] via `key.workspace = true`
//   - Cargo.lock at the workspace root, produced earlier by Cargo
//
// Every [[package]] of the lockfile becomes a [deps.ResolvedDependency];
// its source string is classified by [ParseSource].
//
//	loader := rust.NewLoader(logger)
//	project, _ := loader.Load(ctx, "Cargo.toml")
//
// [deps.Loader]: github.com/tulip/cargo-bitbake/pkg/deps.Loader
// [deps.ResolvedDependency]: github.com/tulip/cargo-bitbake/pkg/deps.ResolvedDependency
package rust
