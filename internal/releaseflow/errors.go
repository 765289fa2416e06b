package releaseflow

import (
	"fmt"

	"github.com/release-tools/releasectl/internal/githubrepo"
)

const (
	branchAlreadyExistsErrorTemplateConstant  = "branch %s already started; run git fetch --all && git checkout %s"
	releaseAlreadyExistsErrorTemplateConstant = "release %s already created"
	baseBranchMissingErrorTemplateConstant    = "base branch %s not found"
	baseBranchUnresolvedErrorTemplateConstant = "no base branch resolvable for version %s"
	mergeRequiredErrorTemplateConstant        = "release branch not yet merged into mainline: %s is %s of the latest release"
	noProductionReleaseErrorMessageConstant   = "no production release exists"
)

// BranchAlreadyExistsError reports that the derived branch was already
// started remotely.
type BranchAlreadyExistsError struct {
	BranchName string
}

// Error describes the duplicate branch.
func (alreadyExistsError BranchAlreadyExistsError) Error() string {
	return fmt.Sprintf(branchAlreadyExistsErrorTemplateConstant, alreadyExistsError.BranchName, alreadyExistsError.BranchName)
}

// ReleaseAlreadyExistsError reports that a release with the requested tag
// already exists.
type ReleaseAlreadyExistsError struct {
	TagName string
}

// Error describes the duplicate release.
func (alreadyExistsError ReleaseAlreadyExistsError) Error() string {
	return fmt.Sprintf(releaseAlreadyExistsErrorTemplateConstant, alreadyExistsError.TagName)
}

// BaseBranchMissingError reports that a branch required as a base for the
// requested operation does not exist remotely.
type BaseBranchMissingError struct {
	BranchName string
}

// Error names the missing base branch.
func (missingError BaseBranchMissingError) Error() string {
	return fmt.Sprintf(baseBranchMissingErrorTemplateConstant, missingError.BranchName)
}

// BaseBranchUnresolvedError reports that neither the latest production
// release nor the latest prerelease shares the requested major version, so no
// base branch can be determined.
type BaseBranchUnresolvedError struct {
	Version string
}

// Error names the unresolvable version.
func (unresolvedError BaseBranchUnresolvedError) Error() string {
	return fmt.Sprintf(baseBranchUnresolvedErrorTemplateConstant, unresolvedError.Version)
}

// MergeRequiredError reports that the release branch has commits missing from
// the mainline and must be merged before the release can proceed.
type MergeRequiredError struct {
	BaseBranch string
	Status     githubrepo.ComparisonStatus
}

// Error describes the unmerged branch.
func (mergeError MergeRequiredError) Error() string {
	return fmt.Sprintf(mergeRequiredErrorTemplateConstant, mergeError.BaseBranch, mergeError.Status)
}

// NoProductionReleaseError reports that no production release exists yet, so
// the merge status cannot be evaluated.
type NoProductionReleaseError struct{}

// Error states the missing production release.
func (NoProductionReleaseError) Error() string {
	return noProductionReleaseErrorMessageConstant
}
