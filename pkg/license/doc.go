// Package license maps a Cargo license expression to BitBake's LICENSE and
// LIC_FILES_CHKSUM values.
//
// For every identifier in the expression, [Resolve] looks for a license
// text in the package directory, first hit wins:
//
//  1. a file named exactly like the identifier (license_file)
//  2. LICENSE-<id>, LICENSE-<id>.md, LICENSE-<id>.txt, LICENSE_<id>,
//     <id>.md, <id>.txt, LICENSES/<id>.txt, LICENSES/<id>
//  3. the same names ignoring case
//  4. for single-license packages only: LICENSE, LICENSE.md,
//     LICENSE.txt, LICENCE or COPYING
//
// Identifiers without a file fall back to the stock text under
// ${COMMON_LICENSE_DIR} with md5=generic. A package with neither license
// nor license_file is CLOSED.
package license
