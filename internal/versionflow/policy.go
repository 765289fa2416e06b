package versionflow

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	legacyVersionPatternConstant   = `^(?:\.?\d+){4,5}$`
	semanticVersionPatternConstant = `^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
		`(-(0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)` +
		`(\.(0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*)?` +
		`(\+[0-9a-zA-Z-]+(\.[0-9a-zA-Z-]+)*)?$`
	ticketNamePatternConstant = `^EB-\d+(?:-.+)?$`

	versionComponentSeparatorConstant = "."
	majorVersionComponentCount        = 4

	releaseBranchPrefixConstant    = "release-"
	hotfixBranchPrefixConstant     = "hotfix-"
	featureBranchPrefixConstant    = "feature-"
	releaseFixBranchPrefixConstant = "releasefix-"

	invalidFormatErrorTemplateConstant = "invalid %s format: %s"
)

// IdentifierKind names the category of identifier that failed validation.
type IdentifierKind string

// Identifier kinds reported by InvalidFormatError.
const (
	IdentifierKindVersion IdentifierKind = IdentifierKind("version")
	IdentifierKindTicket  IdentifierKind = IdentifierKind("ticket")
)

var (
	legacyVersionExpression   = regexp.MustCompile(legacyVersionPatternConstant)
	semanticVersionExpression = regexp.MustCompile(semanticVersionPatternConstant)
	ticketNameExpression      = regexp.MustCompile(ticketNamePatternConstant)
)

// InvalidFormatError reports a version or ticket identifier that matches none
// of the accepted grammars.
type InvalidFormatError struct {
	Kind  IdentifierKind
	Value string
}

// Error describes the rejected identifier.
func (formatError InvalidFormatError) Error() string {
	return fmt.Sprintf(invalidFormatErrorTemplateConstant, formatError.Kind, formatError.Value)
}

// ValidateVersion accepts legacy dotted-numeric versions and strict semantic
// versions, returning InvalidFormatError for anything else.
func ValidateVersion(candidate string) error {
	if legacyVersionExpression.MatchString(candidate) {
		return nil
	}

	if semanticVersionExpression.MatchString(candidate) {
		return nil
	}

	return InvalidFormatError{Kind: IdentifierKindVersion, Value: candidate}
}

// ValidateTicketName accepts ticket identifiers of the form EB-<digits> with
// an optional descriptive suffix.
func ValidateTicketName(candidate string) error {
	if ticketNameExpression.MatchString(candidate) {
		return nil
	}

	return InvalidFormatError{Kind: IdentifierKindTicket, Value: candidate}
}

// ExtractMajorVersion joins the first four dot-separated components of the
// version. Callers validate first; inputs with fewer components yield fewer
// components unchanged.
func ExtractMajorVersion(version string) string {
	versionComponents := strings.Split(version, versionComponentSeparatorConstant)
	if len(versionComponents) > majorVersionComponentCount {
		versionComponents = versionComponents[:majorVersionComponentCount]
	}

	return strings.Join(versionComponents, versionComponentSeparatorConstant)
}

// ReleaseBranchName derives the long-lived release branch name for a major
// version.
func ReleaseBranchName(majorVersion string) string {
	return releaseBranchPrefixConstant + majorVersion
}

// HotfixBranchName derives the hotfix branch name for a ticket.
func HotfixBranchName(ticketName string) string {
	return hotfixBranchPrefixConstant + ticketName
}

// FeatureBranchName derives the feature branch name for a ticket.
func FeatureBranchName(ticketName string) string {
	return featureBranchPrefixConstant + ticketName
}

// ReleaseFixBranchName derives the branch name for a fix targeting an open
// release branch.
func ReleaseFixBranchName(ticketName string) string {
	return releaseFixBranchPrefixConstant + ticketName
}
