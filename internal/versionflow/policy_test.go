package versionflow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/release-tools/releasectl/internal/versionflow"
)

func TestValidateVersion(testInstance *testing.T) {
	testCases := []struct {
		name          string
		version       string
		expectedValid bool
	}{
		{name: "semantic_version", version: "1.0.0", expectedValid: true},
		{name: "legacy_three_components", version: "17.11.01", expectedValid: true},
		{name: "legacy_week_version", version: "17.12.11", expectedValid: true},
		{name: "legacy_four_components", version: "17.11.01.02", expectedValid: true},
		{name: "legacy_five_components", version: "17.11.01.02.05", expectedValid: true},
		{name: "semantic_with_prerelease", version: "1.2.3-rc.1", expectedValid: true},
		{name: "semantic_with_build_metadata", version: "1.2.3+build.7", expectedValid: true},
		{name: "alphabetic", version: "abc", expectedValid: false},
		{name: "two_components", version: "1.2", expectedValid: false},
		{name: "empty", version: "", expectedValid: false},
		{name: "trailing_separator", version: "1.2.3.4.", expectedValid: false},
		{name: "embedded_letters", version: "1.2.x.4", expectedValid: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			validationError := versionflow.ValidateVersion(testCase.version)
			if testCase.expectedValid {
				require.NoError(subtest, validationError)
				return
			}

			require.Error(subtest, validationError)
			var formatError versionflow.InvalidFormatError
			require.ErrorAs(subtest, validationError, &formatError)
			require.Equal(subtest, versionflow.IdentifierKindVersion, formatError.Kind)
			require.Equal(subtest, testCase.version, formatError.Value)
		})
	}
}

func TestValidateTicketName(testInstance *testing.T) {
	testCases := []struct {
		name          string
		ticketName    string
		expectedValid bool
	}{
		{name: "plain_ticket", ticketName: "EB-123", expectedValid: true},
		{name: "ticket_with_suffix", ticketName: "EB-123-fix-thing", expectedValid: true},
		{name: "digits_only", ticketName: "123", expectedValid: false},
		{name: "lowercase_prefix", ticketName: "eb-123", expectedValid: false},
		{name: "missing_number", ticketName: "EB-", expectedValid: false},
		{name: "empty_suffix", ticketName: "EB-123-", expectedValid: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			validationError := versionflow.ValidateTicketName(testCase.ticketName)
			if testCase.expectedValid {
				require.NoError(subtest, validationError)
				return
			}

			var formatError versionflow.InvalidFormatError
			require.ErrorAs(subtest, validationError, &formatError)
			require.Equal(subtest, versionflow.IdentifierKindTicket, formatError.Kind)
		})
	}
}

func TestExtractMajorVersion(testInstance *testing.T) {
	testCases := []struct {
		name          string
		version       string
		expectedMajor string
	}{
		{name: "four_components_unchanged", version: "17.11.01.02", expectedMajor: "17.11.01.02"},
		{name: "fifth_component_dropped", version: "17.11.01.02.05", expectedMajor: "17.11.01.02"},
		{name: "fewer_components_preserved", version: "17.11.01", expectedMajor: "17.11.01"},
		{name: "single_component_preserved", version: "17", expectedMajor: "17"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			require.Equal(subtest, testCase.expectedMajor, versionflow.ExtractMajorVersion(testCase.version))
		})
	}
}

func TestBranchNameDerivation(testInstance *testing.T) {
	require.Equal(testInstance, "release-17.11.01.02", versionflow.ReleaseBranchName("17.11.01.02"))
	require.Equal(testInstance, "hotfix-EB-123", versionflow.HotfixBranchName("EB-123"))
	require.Equal(testInstance, "feature-EB-321", versionflow.FeatureBranchName("EB-321"))
	require.Equal(testInstance, "releasefix-EB-456-fix-thing", versionflow.ReleaseFixBranchName("EB-456-fix-thing"))
}
