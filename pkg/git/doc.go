// Package git turns git facts into BitBake fetcher syntax.
//
// [YoctoURL] rewrites clone URLs (https, ssh, scp-style, git+ prefixed
// Cargo sources) into git:// or gitsm:// fetcher URLs. [GoGitInspector]
// reads the project's own checkout, and [SrcPV] decides whether the
// recipe's PV needs a revision suffix.
package git
