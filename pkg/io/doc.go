// Package io provides JSON import and export of recipe fields.
//
// # Overview
//
// A [Record] captures the values bound into the recipe templates together
// with the files written and the advisories raised. It is useful for:
//
//   - Inspecting exactly what the generator computed for a package
//   - Re-rendering recipes from new templates without Cargo installed
//   - Round-trip preservation: export, edit a value, re-import and render
//
// # JSON Format
//
//	{
//	  "fields": {
//	    "name": "app",
//	    "version": "0.1.0",
//	    "license": "MIT | Apache-2.0",
//	    "src_uri": "    crate://crates.io/serde/1.0.190 \\\n"
//	  },
//	  "files": ["app_0.1.0.bb"],
//	  "advisories": ["No package.homepage set in your Cargo.toml, trying package.repository"]
//	}
//
// Only "fields" is read back; "files" and "advisories" are informational.
package io
