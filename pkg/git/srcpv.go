package git

import (
	"fmt"

	"github.com/tulip/cargo-bitbake/pkg/errors"
)

// srcRevLen is how much of the revision is folded into PV.
const srcRevLen = 10

// SrcPV returns the directive that appends a revision-derived component to
// PV, so the sstate cache never treats two untagged builds as the same
// version. A checkout sitting exactly on a tag needs no suffix and yields "".
//
// ${SRCPV} would be the natural choice but cannot be used here because of
// https://github.com/meta-rust/meta-rust/issues/136.
func SrcPV(repo ProjectRepo) (string, error) {
	if len(repo.Rev) < srcRevLen {
		return "", errors.New(errors.ErrCodeInvalidRepoFact,
			"project revision %q is shorter than %d characters; expected a commit id", repo.Rev, srcRevLen)
	}
	if repo.Tag && len(repo.Rev) > srcRevLen {
		return "", nil
	}
	return fmt.Sprintf("PV_append = \".AUTOINC+%s\"", repo.Rev[:srcRevLen]), nil
}
