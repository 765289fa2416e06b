package releaseflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/release-tools/releasectl/internal/githubrepo"
)

const (
	startCommandUseConstant             = "start"
	startCommandShortConstant           = "Create a work branch on the configured repository"
	startCommandLongConstant            = "start creates release, hotfix, feature, and releasefix branches from the correct mainline tip without touching a local checkout."
	startReleaseUseConstant             = "release <version>"
	startReleaseShortConstant           = "Create a release branch from the tip of develop"
	startHotfixUseConstant              = "hotfix <ticket>"
	startHotfixShortConstant            = "Create a hotfix branch from the tip of master"
	startFeatureUseConstant             = "feature <ticket>"
	startFeatureShortConstant           = "Create a feature branch from the tip of develop"
	startReleaseFixUseConstant          = "releasefix <version> <ticket>"
	startReleaseFixShortConstant        = "Create a fix branch from the version's release branch"
	qaCommandUseConstant                = "qa <version>"
	qaCommandShortConstant              = "Publish a prerelease tagged at the tip of the release branch"
	releaseCommandUseConstant           = "release <version>"
	releaseCommandShortConstant         = "Publish a production release tagged at the tip of master"
	releaseCommandLongConstant          = "release verifies that the release branch is fully merged into its mainline and then publishes a production release tagged at the tip of master."
	versionsCommandUseConstant          = "versions"
	versionsCommandShortConstant        = "Show the latest production release and prerelease tags"
	reviewCommandUseConstant            = "review"
	reviewCommandShortConstant          = "Open a pull request for a work branch"
	reviewHotfixUseConstant             = "hotfix <ticket>"
	reviewHotfixShortConstant           = "Open a pull request merging the hotfix branch into master"
	reviewFeatureUseConstant            = "feature <ticket>"
	reviewFeatureShortConstant          = "Open a pull request merging the feature branch into develop"
	missingVersionArgumentMessage       = "version is required"
	missingTicketArgumentMessage        = "ticket name is required"
	branchCreatedTemplateConstant       = "Branch %s created"
	branchCheckoutHintTemplateConstant  = "git fetch --all && git checkout %s"
	releasePublishedTemplateConstant    = "Release %s published: %s"
	prereleasePublishedTemplateConstant = "Pre-release %s published: %s"
	versionsReleaseTemplateConstant     = "Release: %s"
	versionsPrereleaseTemplateConstant  = "Pre-release: %s"
	versionsNoneValueConstant           = "none"
	pullRequestOpenedTemplateConstant   = "Pull request #%d opened: %s"
)

// BuilderDependencies carries the collaborators shared by every release command builder.
type BuilderDependencies struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	GatewayProvider       RepositoryGatewayProvider
}

// StartCommandBuilder assembles the start command group.
type StartCommandBuilder struct {
	Dependencies BuilderDependencies
}

// Build constructs the start command with its branch creating subcommands.
func (builder *StartCommandBuilder) Build() (*cobra.Command, error) {
	startCommand := &cobra.Command{
		Use:   startCommandUseConstant,
		Short: startCommandShortConstant,
		Long:  startCommandLongConstant,
	}

	startCommand.AddCommand(
		&cobra.Command{
			Use:   startReleaseUseConstant,
			Short: startReleaseShortConstant,
			Args:  cobra.ArbitraryArgs,
			RunE:  builder.runStartRelease,
		},
		&cobra.Command{
			Use:   startHotfixUseConstant,
			Short: startHotfixShortConstant,
			Args:  cobra.ArbitraryArgs,
			RunE:  builder.runStartHotfix,
		},
		&cobra.Command{
			Use:   startFeatureUseConstant,
			Short: startFeatureShortConstant,
			Args:  cobra.ArbitraryArgs,
			RunE:  builder.runStartFeature,
		},
		&cobra.Command{
			Use:   startReleaseFixUseConstant,
			Short: startReleaseFixShortConstant,
			Args:  cobra.ArbitraryArgs,
			RunE:  builder.runStartReleaseFix,
		},
	)

	return startCommand, nil
}

func (builder *StartCommandBuilder) runStartRelease(command *cobra.Command, arguments []string) error {
	version, argumentError := requiredArgument(command, arguments, 0, missingVersionArgumentMessage)
	if argumentError != nil {
		return argumentError
	}

	workflowService, serviceError := builder.Dependencies.resolveService()
	if serviceError != nil {
		return serviceError
	}

	createdBranch, creationError := workflowService.CreateReleaseBranch(command.Context(), version)
	if creationError != nil {
		return creationError
	}

	announceBranch(command, createdBranch)
	return nil
}

func (builder *StartCommandBuilder) runStartHotfix(command *cobra.Command, arguments []string) error {
	ticketName, argumentError := requiredArgument(command, arguments, 0, missingTicketArgumentMessage)
	if argumentError != nil {
		return argumentError
	}

	workflowService, serviceError := builder.Dependencies.resolveService()
	if serviceError != nil {
		return serviceError
	}

	createdBranch, creationError := workflowService.CreateHotfixBranch(command.Context(), ticketName)
	if creationError != nil {
		return creationError
	}

	announceBranch(command, createdBranch)
	return nil
}

func (builder *StartCommandBuilder) runStartFeature(command *cobra.Command, arguments []string) error {
	ticketName, argumentError := requiredArgument(command, arguments, 0, missingTicketArgumentMessage)
	if argumentError != nil {
		return argumentError
	}

	workflowService, serviceError := builder.Dependencies.resolveService()
	if serviceError != nil {
		return serviceError
	}

	createdBranch, creationError := workflowService.CreateFeatureBranch(command.Context(), ticketName)
	if creationError != nil {
		return creationError
	}

	announceBranch(command, createdBranch)
	return nil
}

func (builder *StartCommandBuilder) runStartReleaseFix(command *cobra.Command, arguments []string) error {
	version, versionArgumentError := requiredArgument(command, arguments, 0, missingVersionArgumentMessage)
	if versionArgumentError != nil {
		return versionArgumentError
	}
	ticketName, ticketArgumentError := requiredArgument(command, arguments, 1, missingTicketArgumentMessage)
	if ticketArgumentError != nil {
		return ticketArgumentError
	}

	workflowService, serviceError := builder.Dependencies.resolveService()
	if serviceError != nil {
		return serviceError
	}

	createdBranch, creationError := workflowService.CreateReleaseFixBranch(command.Context(), version, ticketName)
	if creationError != nil {
		return creationError
	}

	announceBranch(command, createdBranch)
	return nil
}

// QACommandBuilder assembles the qa command.
type QACommandBuilder struct {
	Dependencies BuilderDependencies
}

// Build constructs the qa command.
func (builder *QACommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   qaCommandUseConstant,
		Short: qaCommandShortConstant,
		Args:  cobra.ArbitraryArgs,
		RunE:  builder.run,
	}, nil
}

func (builder *QACommandBuilder) run(command *cobra.Command, arguments []string) error {
	version, argumentError := requiredArgument(command, arguments, 0, missingVersionArgumentMessage)
	if argumentError != nil {
		return argumentError
	}

	workflowService, serviceError := builder.Dependencies.resolveService()
	if serviceError != nil {
		return serviceError
	}

	publishedRelease, creationError := workflowService.CreatePreRelease(command.Context(), version)
	if creationError != nil {
		return creationError
	}

	fmt.Fprintln(command.OutOrStdout(), fmt.Sprintf(prereleasePublishedTemplateConstant, publishedRelease.TagName, publishedRelease.HTMLURL))
	return nil
}

// ReleaseCommandBuilder assembles the release command.
type ReleaseCommandBuilder struct {
	Dependencies BuilderDependencies
}

// Build constructs the release command.
func (builder *ReleaseCommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   releaseCommandUseConstant,
		Short: releaseCommandShortConstant,
		Long:  releaseCommandLongConstant,
		Args:  cobra.ArbitraryArgs,
		RunE:  builder.run,
	}, nil
}

func (builder *ReleaseCommandBuilder) run(command *cobra.Command, arguments []string) error {
	version, argumentError := requiredArgument(command, arguments, 0, missingVersionArgumentMessage)
	if argumentError != nil {
		return argumentError
	}

	workflowService, serviceError := builder.Dependencies.resolveService()
	if serviceError != nil {
		return serviceError
	}

	if mergeStatusError := workflowService.CheckMergeStatus(command.Context(), version); mergeStatusError != nil {
		return mergeStatusError
	}

	publishedRelease, creationError := workflowService.CreateRelease(command.Context(), version)
	if creationError != nil {
		return creationError
	}

	fmt.Fprintln(command.OutOrStdout(), fmt.Sprintf(releasePublishedTemplateConstant, publishedRelease.TagName, publishedRelease.HTMLURL))
	return nil
}

// VersionsCommandBuilder assembles the versions command.
type VersionsCommandBuilder struct {
	Dependencies BuilderDependencies
}

// Build constructs the versions command.
func (builder *VersionsCommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   versionsCommandUseConstant,
		Short: versionsCommandShortConstant,
		RunE:  builder.run,
	}, nil
}

func (builder *VersionsCommandBuilder) run(command *cobra.Command, _ []string) error {
	workflowService, serviceError := builder.Dependencies.resolveService()
	if serviceError != nil {
		return serviceError
	}

	report, reportError := workflowService.CurrentVersions(command.Context())
	if reportError != nil {
		return reportError
	}

	fmt.Fprintln(command.OutOrStdout(), fmt.Sprintf(versionsReleaseTemplateConstant, tagOrNone(report.ReleaseTag)))
	fmt.Fprintln(command.OutOrStdout(), fmt.Sprintf(versionsPrereleaseTemplateConstant, tagOrNone(report.PrereleaseTag)))
	return nil
}

// ReviewCommandBuilder assembles the review command group.
type ReviewCommandBuilder struct {
	Dependencies BuilderDependencies
}

// Build constructs the review command with its pull request subcommands.
func (builder *ReviewCommandBuilder) Build() (*cobra.Command, error) {
	reviewCommand := &cobra.Command{
		Use:   reviewCommandUseConstant,
		Short: reviewCommandShortConstant,
	}

	reviewCommand.AddCommand(
		&cobra.Command{
			Use:   reviewHotfixUseConstant,
			Short: reviewHotfixShortConstant,
			Args:  cobra.ArbitraryArgs,
			RunE:  builder.runHotfixReview,
		},
		&cobra.Command{
			Use:   reviewFeatureUseConstant,
			Short: reviewFeatureShortConstant,
			Args:  cobra.ArbitraryArgs,
			RunE:  builder.runFeatureReview,
		},
	)

	return reviewCommand, nil
}

func (builder *ReviewCommandBuilder) runHotfixReview(command *cobra.Command, arguments []string) error {
	ticketName, argumentError := requiredArgument(command, arguments, 0, missingTicketArgumentMessage)
	if argumentError != nil {
		return argumentError
	}

	workflowService, serviceError := builder.Dependencies.resolveService()
	if serviceError != nil {
		return serviceError
	}

	openedPullRequest, reviewError := workflowService.OpenHotfixReview(command.Context(), ticketName)
	if reviewError != nil {
		return reviewError
	}

	announcePullRequest(command, openedPullRequest)
	return nil
}

func (builder *ReviewCommandBuilder) runFeatureReview(command *cobra.Command, arguments []string) error {
	ticketName, argumentError := requiredArgument(command, arguments, 0, missingTicketArgumentMessage)
	if argumentError != nil {
		return argumentError
	}

	workflowService, serviceError := builder.Dependencies.resolveService()
	if serviceError != nil {
		return serviceError
	}

	openedPullRequest, reviewError := workflowService.OpenFeatureReview(command.Context(), ticketName)
	if reviewError != nil {
		return reviewError
	}

	announcePullRequest(command, openedPullRequest)
	return nil
}

func requiredArgument(command *cobra.Command, arguments []string, position int, missingMessage string) (string, error) {
	if position < len(arguments) {
		trimmed := strings.TrimSpace(arguments[position])
		if len(trimmed) > 0 {
			return trimmed, nil
		}
	}

	if command != nil {
		_ = command.Help()
	}
	return "", errors.New(missingMessage)
}

func announceBranch(command *cobra.Command, createdBranch githubrepo.BranchRef) {
	fmt.Fprintln(command.OutOrStdout(), fmt.Sprintf(branchCreatedTemplateConstant, createdBranch.Name))
	fmt.Fprintln(command.OutOrStdout(), fmt.Sprintf(branchCheckoutHintTemplateConstant, createdBranch.Name))
}

func announcePullRequest(command *cobra.Command, openedPullRequest githubrepo.PullRequest) {
	fmt.Fprintln(command.OutOrStdout(), fmt.Sprintf(pullRequestOpenedTemplateConstant, openedPullRequest.Number, openedPullRequest.HTMLURL))
}

func tagOrNone(tagName string) string {
	if len(tagName) == 0 {
		return versionsNoneValueConstant
	}
	return tagName
}
