package githubrepo

// ComparisonStatus enumerates the relationships GitHub reports between two
// refs.
type ComparisonStatus string

// Comparison statuses returned by the compare endpoint.
const (
	ComparisonStatusIdentical ComparisonStatus = ComparisonStatus("identical")
	ComparisonStatusAhead     ComparisonStatus = ComparisonStatus("ahead")
	ComparisonStatusBehind    ComparisonStatus = ComparisonStatus("behind")
	ComparisonStatusDiverged  ComparisonStatus = ComparisonStatus("diverged")
)

// BranchRef identifies a remote branch and the commit at its tip.
type BranchRef struct {
	Name string
	SHA  string
}

// Release captures the remote release record fields the workflow relies on.
type Release struct {
	TagName         string
	DisplayName     string
	TargetCommitish string
	Draft           bool
	Prerelease      bool
	HTMLURL         string
}

// NewRelease describes a release to be created. The body is always empty and
// the draft flag always false.
type NewRelease struct {
	TagName     string
	TargetSHA   string
	DisplayName string
	Prerelease  bool
}

// Comparison summarizes the relationship between a base and a head ref.
type Comparison struct {
	Status   ComparisonStatus
	AheadBy  int
	BehindBy int
}

// PullRequest captures the remote pull request fields surfaced to callers.
type PullRequest struct {
	Number  int
	Title   string
	HTMLURL string
}

// NewPullRequest describes a pull request to be opened.
type NewPullRequest struct {
	BaseBranch string
	HeadBranch string
	Title      string
	Body       string
}
