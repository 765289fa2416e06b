package releaseflow

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/release-tools/releasectl/internal/githubrepo"
	"github.com/release-tools/releasectl/internal/versionflow"
)

const (
	developBranchNameConstant = "develop"
	masterBranchNameConstant  = "master"

	releaseDisplayNamePrefixConstant = "release-"

	repositoryGatewayRequiredMessageConstant = "release workflow requires a repository gateway"

	resolvingBaseBranchMessageConstant = "resolving release base branch"
	baseBranchResolvedMessageConstant  = "release base branch resolved"
	creatingBranchMessageConstant      = "creating branch"
	creatingReleaseMessageConstant     = "creating release"

	logFieldVersionConstant      = "version"
	logFieldBranchConstant       = "branch"
	logFieldBaseBranchConstant   = "base_branch"
	logFieldTagConstant          = "tag"
	logFieldPrereleaseConstant   = "prerelease"
	logFieldMajorVersionConstant = "major_version"
)

// RepositoryGateway abstracts the remote repository operations the workflow
// performs. githubrepo.Client satisfies it.
type RepositoryGateway interface {
	GetBranch(executionContext context.Context, branchName string) (githubrepo.BranchRef, error)
	CreateBranch(executionContext context.Context, branchName string, commitSHA string) (githubrepo.BranchRef, error)
	GetRelease(executionContext context.Context, tagName string) (githubrepo.Release, error)
	CreateRelease(executionContext context.Context, newRelease githubrepo.NewRelease) (githubrepo.Release, error)
	LatestRelease(executionContext context.Context) (githubrepo.Release, error)
	LatestPrerelease(executionContext context.Context) (githubrepo.Release, error)
	Compare(executionContext context.Context, baseRef string, headRef string) (githubrepo.Comparison, error)
	CreatePullRequest(executionContext context.Context, newPullRequest githubrepo.NewPullRequest) (githubrepo.PullRequest, error)
}

// ServiceDependencies lists the collaborators required by the workflow.
type ServiceDependencies struct {
	Repository RepositoryGateway
	Logger     *zap.Logger
}

// Service orchestrates branch and release creation against a single remote
// repository. Every operation is a strictly ordered sequence of blocking
// remote calls with no retries and no rollback of partial mutations.
type Service struct {
	repository RepositoryGateway
	logger     *zap.Logger
}

// VersionsReport summarizes the current production and QA versions. Empty
// fields mean no release of that kind exists yet.
type VersionsReport struct {
	ReleaseTag    string
	PrereleaseTag string
}

// NewService validates dependencies and constructs a workflow service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Repository == nil {
		return nil, errors.New(repositoryGatewayRequiredMessageConstant)
	}

	workflowLogger := dependencies.Logger
	if workflowLogger == nil {
		workflowLogger = zap.NewNop()
	}

	return &Service{repository: dependencies.Repository, logger: workflowLogger}, nil
}

// CreateReleaseBranch starts the release branch for the version's major
// version, cut from the current tip of develop.
func (service *Service) CreateReleaseBranch(executionContext context.Context, version string) (githubrepo.BranchRef, error) {
	if validationError := versionflow.ValidateVersion(version); validationError != nil {
		return githubrepo.BranchRef{}, validationError
	}

	branchName := versionflow.ReleaseBranchName(versionflow.ExtractMajorVersion(version))
	return service.createBranchFromBase(executionContext, branchName, developBranchNameConstant)
}

// CreateHotfixBranch starts a hotfix branch for the ticket, cut from the
// current tip of master.
func (service *Service) CreateHotfixBranch(executionContext context.Context, ticketName string) (githubrepo.BranchRef, error) {
	if validationError := versionflow.ValidateTicketName(ticketName); validationError != nil {
		return githubrepo.BranchRef{}, validationError
	}

	return service.createBranchFromBase(executionContext, versionflow.HotfixBranchName(ticketName), masterBranchNameConstant)
}

// CreateFeatureBranch starts a feature branch for the ticket, cut from the
// current tip of develop.
func (service *Service) CreateFeatureBranch(executionContext context.Context, ticketName string) (githubrepo.BranchRef, error) {
	if validationError := versionflow.ValidateTicketName(ticketName); validationError != nil {
		return githubrepo.BranchRef{}, validationError
	}

	return service.createBranchFromBase(executionContext, versionflow.FeatureBranchName(ticketName), developBranchNameConstant)
}

// CreateReleaseFixBranch starts a fix branch for a release still under QA,
// cut from the tip of that release's branch.
func (service *Service) CreateReleaseFixBranch(executionContext context.Context, version string, ticketName string) (githubrepo.BranchRef, error) {
	if validationError := versionflow.ValidateVersion(version); validationError != nil {
		return githubrepo.BranchRef{}, validationError
	}
	if validationError := versionflow.ValidateTicketName(ticketName); validationError != nil {
		return githubrepo.BranchRef{}, validationError
	}

	releaseBranchName := versionflow.ReleaseBranchName(versionflow.ExtractMajorVersion(version))
	return service.createBranchFromBase(executionContext, versionflow.ReleaseFixBranchName(ticketName), releaseBranchName)
}

// ResolveReleaseBaseBranch decides which branch a release of the given
// version should be cut from. A version sharing the latest production
// release's major version is a hotfix-style release onto master; a version
// sharing the latest prerelease's major version targets that release branch.
// Anything else fails with BaseBranchUnresolvedError rather than propagating
// an empty branch name downstream.
func (service *Service) ResolveReleaseBaseBranch(executionContext context.Context, version string) (string, error) {
	releaseMajorVersion := versionflow.ExtractMajorVersion(version)

	service.logger.Debug(
		resolvingBaseBranchMessageConstant,
		zap.String(logFieldVersionConstant, version),
		zap.String(logFieldMajorVersionConstant, releaseMajorVersion),
	)

	productionMajorVersion, productionError := service.latestReleaseMajorVersion(executionContext)
	if productionError != nil {
		return "", productionError
	}

	if productionMajorVersion == releaseMajorVersion {
		service.logger.Debug(baseBranchResolvedMessageConstant, zap.String(logFieldBaseBranchConstant, masterBranchNameConstant))
		return masterBranchNameConstant, nil
	}

	prereleaseMajorVersion, prereleaseError := service.latestPrereleaseMajorVersion(executionContext)
	if prereleaseError != nil {
		return "", prereleaseError
	}

	if prereleaseMajorVersion == releaseMajorVersion {
		resolvedBranchName := versionflow.ReleaseBranchName(releaseMajorVersion)
		service.logger.Debug(baseBranchResolvedMessageConstant, zap.String(logFieldBaseBranchConstant, resolvedBranchName))
		return resolvedBranchName, nil
	}

	return "", BaseBranchUnresolvedError{Version: version}
}

// CheckMergeStatus verifies that the resolved base branch holds nothing the
// latest production release lacks. Statuses behind and identical pass; ahead
// and diverged mean the release branch still needs merging.
func (service *Service) CheckMergeStatus(executionContext context.Context, version string) error {
	baseBranchName, resolutionError := service.ResolveReleaseBaseBranch(executionContext, version)
	if resolutionError != nil {
		return resolutionError
	}

	productionRelease, productionError := service.repository.LatestRelease(executionContext)
	if productionError != nil {
		if isNotFound(productionError) {
			return NoProductionReleaseError{}
		}
		return productionError
	}
	if len(productionRelease.TagName) == 0 {
		return NoProductionReleaseError{}
	}

	comparison, comparisonError := service.repository.Compare(executionContext, productionRelease.TagName, baseBranchName)
	if comparisonError != nil {
		return comparisonError
	}

	if mergeRequired(comparison.Status) {
		return MergeRequiredError{BaseBranch: baseBranchName, Status: comparison.Status}
	}

	return nil
}

// CreatePreRelease publishes a prerelease for QA, tagged at the tip of the
// version's release branch.
func (service *Service) CreatePreRelease(executionContext context.Context, version string) (githubrepo.Release, error) {
	if validationError := versionflow.ValidateVersion(version); validationError != nil {
		return githubrepo.Release{}, validationError
	}

	releaseBranchName := versionflow.ReleaseBranchName(versionflow.ExtractMajorVersion(version))
	releaseBranch, branchError := service.repository.GetBranch(executionContext, releaseBranchName)
	if branchError != nil {
		if isNotFound(branchError) {
			return githubrepo.Release{}, BaseBranchMissingError{BranchName: releaseBranchName}
		}
		return githubrepo.Release{}, branchError
	}

	if duplicateError := service.ensureReleaseAbsent(executionContext, version); duplicateError != nil {
		return githubrepo.Release{}, duplicateError
	}

	service.logger.Info(
		creatingReleaseMessageConstant,
		zap.String(logFieldTagConstant, version),
		zap.Bool(logFieldPrereleaseConstant, true),
	)

	return service.repository.CreateRelease(executionContext, githubrepo.NewRelease{
		TagName:     version,
		TargetSHA:   releaseBranch.SHA,
		DisplayName: releaseDisplayNamePrefixConstant + version,
		Prerelease:  true,
	})
}

// CreateRelease promotes the version to a production release tagged at the
// tip of master, after verifying the release branch is merged. The merge
// check here differs from CheckMergeStatus: it compares master against the
// release branch directly rather than the latest release tag against the
// resolved base branch.
func (service *Service) CreateRelease(executionContext context.Context, version string) (githubrepo.Release, error) {
	if validationError := versionflow.ValidateVersion(version); validationError != nil {
		return githubrepo.Release{}, validationError
	}

	releaseBranchName := versionflow.ReleaseBranchName(versionflow.ExtractMajorVersion(version))
	comparison, comparisonError := service.repository.Compare(executionContext, masterBranchNameConstant, releaseBranchName)
	if comparisonError != nil {
		return githubrepo.Release{}, comparisonError
	}

	if mergeRequired(comparison.Status) {
		return githubrepo.Release{}, MergeRequiredError{BaseBranch: releaseBranchName, Status: comparison.Status}
	}

	if duplicateError := service.ensureReleaseAbsent(executionContext, version); duplicateError != nil {
		return githubrepo.Release{}, duplicateError
	}

	masterBranch, masterError := service.repository.GetBranch(executionContext, masterBranchNameConstant)
	if masterError != nil {
		if isNotFound(masterError) {
			return githubrepo.Release{}, BaseBranchMissingError{BranchName: masterBranchNameConstant}
		}
		return githubrepo.Release{}, masterError
	}

	service.logger.Info(
		creatingReleaseMessageConstant,
		zap.String(logFieldTagConstant, version),
		zap.Bool(logFieldPrereleaseConstant, false),
	)

	return service.repository.CreateRelease(executionContext, githubrepo.NewRelease{
		TagName:     version,
		TargetSHA:   masterBranch.SHA,
		DisplayName: releaseDisplayNamePrefixConstant + version,
		Prerelease:  false,
	})
}

// CurrentVersions reports the latest production release tag and the latest
// prerelease tag. Missing releases yield empty fields rather than errors.
func (service *Service) CurrentVersions(executionContext context.Context) (VersionsReport, error) {
	report := VersionsReport{}

	productionRelease, productionError := service.repository.LatestRelease(executionContext)
	switch {
	case productionError == nil:
		report.ReleaseTag = productionRelease.TagName
	case !isNotFound(productionError):
		return VersionsReport{}, productionError
	}

	latestPrerelease, prereleaseError := service.repository.LatestPrerelease(executionContext)
	switch {
	case prereleaseError == nil:
		report.PrereleaseTag = latestPrerelease.TagName
	case !isNotFound(prereleaseError):
		return VersionsReport{}, prereleaseError
	}

	return report, nil
}

// OpenHotfixReview opens a pull request merging the ticket's hotfix branch
// into master.
func (service *Service) OpenHotfixReview(executionContext context.Context, ticketName string) (githubrepo.PullRequest, error) {
	if validationError := versionflow.ValidateTicketName(ticketName); validationError != nil {
		return githubrepo.PullRequest{}, validationError
	}

	return service.repository.CreatePullRequest(executionContext, githubrepo.NewPullRequest{
		BaseBranch: masterBranchNameConstant,
		HeadBranch: versionflow.HotfixBranchName(ticketName),
		Title:      "Hotfix " + ticketName,
	})
}

// OpenFeatureReview opens a pull request merging the ticket's feature branch
// into develop.
func (service *Service) OpenFeatureReview(executionContext context.Context, ticketName string) (githubrepo.PullRequest, error) {
	if validationError := versionflow.ValidateTicketName(ticketName); validationError != nil {
		return githubrepo.PullRequest{}, validationError
	}

	return service.repository.CreatePullRequest(executionContext, githubrepo.NewPullRequest{
		BaseBranch: developBranchNameConstant,
		HeadBranch: versionflow.FeatureBranchName(ticketName),
		Title:      "Feature " + ticketName,
	})
}

func (service *Service) createBranchFromBase(executionContext context.Context, branchName string, baseBranchName string) (githubrepo.BranchRef, error) {
	_, existingBranchError := service.repository.GetBranch(executionContext, branchName)
	if existingBranchError == nil {
		return githubrepo.BranchRef{}, BranchAlreadyExistsError{BranchName: branchName}
	}
	if !isNotFound(existingBranchError) {
		return githubrepo.BranchRef{}, existingBranchError
	}

	baseBranch, baseBranchError := service.repository.GetBranch(executionContext, baseBranchName)
	if baseBranchError != nil {
		if isNotFound(baseBranchError) {
			return githubrepo.BranchRef{}, BaseBranchMissingError{BranchName: baseBranchName}
		}
		return githubrepo.BranchRef{}, baseBranchError
	}

	service.logger.Info(
		creatingBranchMessageConstant,
		zap.String(logFieldBranchConstant, branchName),
		zap.String(logFieldBaseBranchConstant, baseBranchName),
	)

	return service.repository.CreateBranch(executionContext, branchName, baseBranch.SHA)
}

func (service *Service) latestReleaseMajorVersion(executionContext context.Context) (string, error) {
	productionRelease, lookupError := service.repository.LatestRelease(executionContext)
	if lookupError != nil {
		if isNotFound(lookupError) {
			return "", nil
		}
		return "", lookupError
	}

	return versionflow.ExtractMajorVersion(productionRelease.TagName), nil
}

func (service *Service) latestPrereleaseMajorVersion(executionContext context.Context) (string, error) {
	latestPrerelease, lookupError := service.repository.LatestPrerelease(executionContext)
	if lookupError != nil {
		if isNotFound(lookupError) {
			return "", nil
		}
		return "", lookupError
	}

	return versionflow.ExtractMajorVersion(latestPrerelease.TagName), nil
}

func (service *Service) ensureReleaseAbsent(executionContext context.Context, tagName string) error {
	_, lookupError := service.repository.GetRelease(executionContext, tagName)
	if lookupError == nil {
		return ReleaseAlreadyExistsError{TagName: tagName}
	}
	if !isNotFound(lookupError) {
		return lookupError
	}
	return nil
}

func mergeRequired(status githubrepo.ComparisonStatus) bool {
	return status == githubrepo.ComparisonStatusAhead || status == githubrepo.ComparisonStatusDiverged
}

func isNotFound(candidateError error) bool {
	var notFoundError githubrepo.NotFoundError
	return errors.As(candidateError, &notFoundError)
}
