// Package versionflow validates release version and ticket identifiers and
// derives the branch names the release workflow operates on.
//
// Versions are accepted in two shapes: the legacy dotted-numeric scheme
// (major.minor.week.rev with an optional fifth component) and strict
// semantic versions. The major version, the first four dot-separated
// components, groups releases under a shared release branch.
package versionflow
