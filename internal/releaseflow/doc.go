// Package releaseflow implements the release workflow for a GitHub
// repository: starting release and hotfix branches, cutting QA pre-releases,
// and promoting merged release branches to production releases.
//
// It exposes Service for driving the workflow programmatically and command
// builders wiring the start, qa, release, versions, and review Cobra
// commands. All remote state lives in the repository; the workflow holds no
// local state, so two concurrent invocations can race past the existence
// checks and the remote uniqueness constraints on refs and tags settle the
// outcome.
package releaseflow
