package deps

import "fmt"

// Advisories collects non-fatal messages produced while computing a value,
// such as "no package.description set". Components return them next to the
// value instead of printing, and the caller decides how to report them.
type Advisories []string

// Add appends a formatted advisory.
func (a *Advisories) Add(format string, args ...any) {
	*a = append(*a, fmt.Sprintf(format, args...))
}

// Extend appends all advisories from other.
func (a *Advisories) Extend(other Advisories) {
	*a = append(*a, other...)
}
