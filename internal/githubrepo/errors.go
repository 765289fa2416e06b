package githubrepo

import "fmt"

const (
	notFoundErrorTemplateConstant             = "%s %s not found"
	alreadyExistsErrorTemplateConstant        = "%s %s already exists"
	remoteErrorTemplateConstant               = "remote returned status %d: %s"
	transportErrorTemplateConstant            = "request failed: %v"
	invalidConfigurationErrorTemplateConstant = "repository client configuration missing %s"
)

// ResourceKind names the remote resource category an error refers to.
type ResourceKind string

// Resource kinds referenced by client errors.
const (
	ResourceKindBranch      ResourceKind = ResourceKind("branch")
	ResourceKindRelease     ResourceKind = ResourceKind("release")
	ResourceKindComparison  ResourceKind = ResourceKind("comparison")
	ResourceKindPullRequest ResourceKind = ResourceKind("pull request")
)

// NotFoundError reports a remote lookup miss (HTTP 404). Callers frequently
// catch it and substitute a fallback value.
type NotFoundError struct {
	Resource ResourceKind
	Name     string
}

// Error describes the missing resource.
func (notFoundError NotFoundError) Error() string {
	return fmt.Sprintf(notFoundErrorTemplateConstant, notFoundError.Resource, notFoundError.Name)
}

// AlreadyExistsError reports a create that collided with an existing resource.
type AlreadyExistsError struct {
	Resource ResourceKind
	Name     string
}

// Error describes the duplicate resource.
func (alreadyExistsError AlreadyExistsError) Error() string {
	return fmt.Sprintf(alreadyExistsErrorTemplateConstant, alreadyExistsError.Resource, alreadyExistsError.Name)
}

// RemoteError reports a non-2xx response that is neither a lookup miss nor a
// duplicate create.
type RemoteError struct {
	StatusCode int
	Message    string
}

// Error describes the remote failure.
func (remoteError RemoteError) Error() string {
	return fmt.Sprintf(remoteErrorTemplateConstant, remoteError.StatusCode, remoteError.Message)
}

// TransportError reports a network-level failure before any response arrived.
type TransportError struct {
	Cause error
}

// Error describes the transport failure.
func (transportError TransportError) Error() string {
	return fmt.Sprintf(transportErrorTemplateConstant, transportError.Cause)
}

// Unwrap exposes the underlying transport failure.
func (transportError TransportError) Unwrap() error {
	return transportError.Cause
}

// InvalidConfigurationError reports a missing required client configuration
// value.
type InvalidConfigurationError struct {
	FieldName string
}

// Error names the missing configuration field.
func (configurationError InvalidConfigurationError) Error() string {
	return fmt.Sprintf(invalidConfigurationErrorTemplateConstant, configurationError.FieldName)
}
