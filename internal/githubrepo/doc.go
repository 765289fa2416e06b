// Package githubrepo provides authenticated access to a single GitHub
// repository's branches, releases, comparisons, and pull requests.
//
// It wraps the go-github client with repository coordinates fixed at
// construction and translates remote failures into a closed error taxonomy
// (NotFoundError, AlreadyExistsError, RemoteError, TransportError) matched
// explicitly by the release workflow.
package githubrepo
