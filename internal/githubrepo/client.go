package githubrepo

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v60/github"
)

const (
	ownerFieldNameConstant      = "owner"
	repositoryFieldNameConstant = "repository"
	loginFieldNameConstant      = "login"
	tokenFieldNameConstant      = "token"

	branchRefQualifierConstant       = "heads/"
	branchRefFullPrefixConstant      = "refs/heads/"
	urlPathSeparatorConstant         = "/"
	latestReleaseNameConstant        = "latest"
	latestPrereleaseNameConstant     = "latest prerelease"
	releaseListPageSizeConstant      = 100
	emptyReleaseBodyConstant         = ""
	releaseDraftFlagConstant         = false
	comparisonRangeSeparatorConstant = "..."
)

// Configuration carries the coordinates and credentials for one repository.
type Configuration struct {
	Owner      string
	Repository string
	Login      string
	Token      string
	APIBaseURL string
}

// Client performs authenticated operations against a single repository.
type Client struct {
	owner        string
	repository   string
	githubClient *github.Client
}

// NewClient validates the configuration and constructs a repository client
// authenticated with HTTP basic credentials. A nil httpClient selects the
// default transport; APIBaseURL overrides api.github.com when non-empty.
func NewClient(configuration Configuration, httpClient *http.Client) (*Client, error) {
	repositoryOwner := strings.TrimSpace(configuration.Owner)
	if len(repositoryOwner) == 0 {
		return nil, InvalidConfigurationError{FieldName: ownerFieldNameConstant}
	}

	repositoryName := strings.TrimSpace(configuration.Repository)
	if len(repositoryName) == 0 {
		return nil, InvalidConfigurationError{FieldName: repositoryFieldNameConstant}
	}

	loginIdentifier := strings.TrimSpace(configuration.Login)
	if len(loginIdentifier) == 0 {
		return nil, InvalidConfigurationError{FieldName: loginFieldNameConstant}
	}

	tokenCredential := strings.TrimSpace(configuration.Token)
	if len(tokenCredential) == 0 {
		return nil, InvalidConfigurationError{FieldName: tokenFieldNameConstant}
	}

	authenticatedTransport := &github.BasicAuthTransport{
		Username: loginIdentifier,
		Password: tokenCredential,
	}
	if httpClient != nil {
		authenticatedTransport.Transport = httpClient.Transport
	}

	githubClient := github.NewClient(authenticatedTransport.Client())

	baseURLValue := strings.TrimSpace(configuration.APIBaseURL)
	if len(baseURLValue) > 0 {
		if !strings.HasSuffix(baseURLValue, urlPathSeparatorConstant) {
			baseURLValue += urlPathSeparatorConstant
		}

		parsedBaseURL, parseError := url.Parse(baseURLValue)
		if parseError != nil {
			return nil, TransportError{Cause: parseError}
		}

		githubClient.BaseURL = parsedBaseURL
		githubClient.UploadURL = parsedBaseURL
	}

	return &Client{
		owner:        repositoryOwner,
		repository:   repositoryName,
		githubClient: githubClient,
	}, nil
}

// GetBranch looks up a branch by name and returns its tip commit.
func (client *Client) GetBranch(executionContext context.Context, branchName string) (BranchRef, error) {
	reference, _, lookupError := client.githubClient.Git.GetRef(executionContext, client.owner, client.repository, branchRefQualifierConstant+branchName)
	if lookupError != nil {
		return BranchRef{}, translateRemoteError(lookupError, ResourceKindBranch, branchName)
	}

	return BranchRef{Name: branchName, SHA: reference.GetObject().GetSHA()}, nil
}

// CreateBranch creates a branch pointing at the provided commit SHA.
func (client *Client) CreateBranch(executionContext context.Context, branchName string, commitSHA string) (BranchRef, error) {
	newReference := &github.Reference{
		Ref:    github.String(branchRefFullPrefixConstant + branchName),
		Object: &github.GitObject{SHA: github.String(commitSHA)},
	}

	createdReference, _, creationError := client.githubClient.Git.CreateRef(executionContext, client.owner, client.repository, newReference)
	if creationError != nil {
		var errorResponse *github.ErrorResponse
		if errors.As(creationError, &errorResponse) && responseStatusCode(errorResponse) == http.StatusUnprocessableEntity {
			return BranchRef{}, AlreadyExistsError{Resource: ResourceKindBranch, Name: branchName}
		}
		return BranchRef{}, translateRemoteError(creationError, ResourceKindBranch, branchName)
	}

	return BranchRef{Name: branchName, SHA: createdReference.GetObject().GetSHA()}, nil
}

// GetRelease looks up a release by tag name.
func (client *Client) GetRelease(executionContext context.Context, tagName string) (Release, error) {
	remoteRelease, _, lookupError := client.githubClient.Repositories.GetReleaseByTag(executionContext, client.owner, client.repository, tagName)
	if lookupError != nil {
		return Release{}, translateRemoteError(lookupError, ResourceKindRelease, tagName)
	}

	return releaseFromRemote(remoteRelease), nil
}

// CreateRelease publishes a release record. The body is always empty and the
// draft flag always false.
func (client *Client) CreateRelease(executionContext context.Context, newRelease NewRelease) (Release, error) {
	releasePayload := &github.RepositoryRelease{
		TagName:         github.String(newRelease.TagName),
		TargetCommitish: github.String(newRelease.TargetSHA),
		Name:            github.String(newRelease.DisplayName),
		Body:            github.String(emptyReleaseBodyConstant),
		Draft:           github.Bool(releaseDraftFlagConstant),
		Prerelease:      github.Bool(newRelease.Prerelease),
	}

	createdRelease, _, creationError := client.githubClient.Repositories.CreateRelease(executionContext, client.owner, client.repository, releasePayload)
	if creationError != nil {
		return Release{}, translateRemoteError(creationError, ResourceKindRelease, newRelease.TagName)
	}

	return releaseFromRemote(createdRelease), nil
}

// LatestRelease returns the most recent non-prerelease release.
func (client *Client) LatestRelease(executionContext context.Context) (Release, error) {
	remoteRelease, _, lookupError := client.githubClient.Repositories.GetLatestRelease(executionContext, client.owner, client.repository)
	if lookupError != nil {
		return Release{}, translateRemoteError(lookupError, ResourceKindRelease, latestReleaseNameConstant)
	}

	return releaseFromRemote(remoteRelease), nil
}

// ListPrereleases returns every release flagged prerelease, preserving the
// order the releases endpoint reports.
func (client *Client) ListPrereleases(executionContext context.Context) ([]Release, error) {
	listOptions := &github.ListOptions{PerPage: releaseListPageSizeConstant}

	var prereleases []Release
	for {
		remoteReleases, listResponse, listError := client.githubClient.Repositories.ListReleases(executionContext, client.owner, client.repository, listOptions)
		if listError != nil {
			return nil, translateRemoteError(listError, ResourceKindRelease, latestPrereleaseNameConstant)
		}

		for _, remoteRelease := range remoteReleases {
			if remoteRelease.GetPrerelease() {
				prereleases = append(prereleases, releaseFromRemote(remoteRelease))
			}
		}

		if listResponse.NextPage == 0 {
			break
		}
		listOptions.Page = listResponse.NextPage
	}

	return prereleases, nil
}

// LatestPrerelease returns the most recent prerelease as ordered by the
// releases endpoint.
func (client *Client) LatestPrerelease(executionContext context.Context) (Release, error) {
	prereleases, listError := client.ListPrereleases(executionContext)
	if listError != nil {
		return Release{}, listError
	}

	if len(prereleases) == 0 {
		return Release{}, NotFoundError{Resource: ResourceKindRelease, Name: latestPrereleaseNameConstant}
	}

	return prereleases[0], nil
}

// Compare reports the relationship between a base and a head ref.
func (client *Client) Compare(executionContext context.Context, baseRef string, headRef string) (Comparison, error) {
	remoteComparison, _, comparisonError := client.githubClient.Repositories.CompareCommits(executionContext, client.owner, client.repository, baseRef, headRef, nil)
	if comparisonError != nil {
		return Comparison{}, translateRemoteError(comparisonError, ResourceKindComparison, baseRef+comparisonRangeSeparatorConstant+headRef)
	}

	return Comparison{
		Status:   ComparisonStatus(remoteComparison.GetStatus()),
		AheadBy:  remoteComparison.GetAheadBy(),
		BehindBy: remoteComparison.GetBehindBy(),
	}, nil
}

// CreatePullRequest opens a pull request merging the head branch into the
// base branch.
func (client *Client) CreatePullRequest(executionContext context.Context, newPullRequest NewPullRequest) (PullRequest, error) {
	pullRequestPayload := &github.NewPullRequest{
		Title: github.String(newPullRequest.Title),
		Head:  github.String(newPullRequest.HeadBranch),
		Base:  github.String(newPullRequest.BaseBranch),
		Body:  github.String(newPullRequest.Body),
	}

	createdPullRequest, _, creationError := client.githubClient.PullRequests.Create(executionContext, client.owner, client.repository, pullRequestPayload)
	if creationError != nil {
		return PullRequest{}, translateRemoteError(creationError, ResourceKindPullRequest, newPullRequest.HeadBranch)
	}

	return PullRequest{
		Number:  createdPullRequest.GetNumber(),
		Title:   createdPullRequest.GetTitle(),
		HTMLURL: createdPullRequest.GetHTMLURL(),
	}, nil
}

func releaseFromRemote(remoteRelease *github.RepositoryRelease) Release {
	return Release{
		TagName:         remoteRelease.GetTagName(),
		DisplayName:     remoteRelease.GetName(),
		TargetCommitish: remoteRelease.GetTargetCommitish(),
		Draft:           remoteRelease.GetDraft(),
		Prerelease:      remoteRelease.GetPrerelease(),
		HTMLURL:         remoteRelease.GetHTMLURL(),
	}
}

func translateRemoteError(remoteCallError error, resource ResourceKind, resourceName string) error {
	var errorResponse *github.ErrorResponse
	if errors.As(remoteCallError, &errorResponse) {
		statusCode := responseStatusCode(errorResponse)
		if statusCode == http.StatusNotFound {
			return NotFoundError{Resource: resource, Name: resourceName}
		}
		return RemoteError{StatusCode: statusCode, Message: errorResponse.Message}
	}

	return TransportError{Cause: remoteCallError}
}

func responseStatusCode(errorResponse *github.ErrorResponse) int {
	if errorResponse == nil || errorResponse.Response == nil {
		return 0
	}
	return errorResponse.Response.StatusCode
}
