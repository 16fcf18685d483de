// Package deps defines the resolved-dependency model consumed by the recipe
// generator.
//
// # Overview
//
// cargo-bitbake never resolves dependencies itself. A [Loader] hands it a
// [Project]: the root [Package] plus every [ResolvedDependency] of the
// already-resolved graph. Each dependency carries a [Source]:
//
//   - [RegistrySource]: fetched from crates.io
//   - [PathSource]: lives inside the root package's tree, never fetched
//   - [GitSource]: a git checkout pinned by a [GitReference]
//   - [OtherSource]: any other URL, passed through verbatim
//
// Source and GitReference are closed sets; consumers type-switch on them.
//
// # Loaders
//
// The Cargo implementation lives in [rust]. Synthetic fixtures can be built
// directly from these types, which is how the classifier is tested.
//
// # Advisories
//
// [Advisories] carries non-fatal messages ("no package.homepage set, using
// package.repository") next to a computed value so computation stays free of
// console output.
//
// [rust]: github.com/tulip/cargo-bitbake/pkg/deps/rust
package deps
