package releaseflow

import "strings"

const (
	ownerConfigurationKeyConstant      = "owner"
	repositoryConfigurationKeyConstant = "repository"
	loginConfigurationKeyConstant      = "login"
	tokenConfigurationKeyConstant      = "token"
	apiBaseURLConfigurationKeyConstant = "api_base_url"
	configurationKeySeparatorConstant  = "."
)

// CommandConfiguration captures the repository coordinates and credentials the
// release commands operate with.
type CommandConfiguration struct {
	Owner      string `mapstructure:"owner"`
	Repository string `mapstructure:"repository"`
	Login      string `mapstructure:"login"`
	Token      string `mapstructure:"token"`
	APIBaseURL string `mapstructure:"api_base_url"`
}

// DefaultCommandConfiguration provides baseline configuration values for the release commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Owner:      "",
		Repository: "",
		Login:      "",
		Token:      "",
		APIBaseURL: "",
	}
}

// DefaultConfigurationValues produces Viper defaults for the release commands.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + ownerConfigurationKeyConstant:      defaults.Owner,
		rootKey + configurationKeySeparatorConstant + repositoryConfigurationKeyConstant: defaults.Repository,
		rootKey + configurationKeySeparatorConstant + loginConfigurationKeyConstant:      defaults.Login,
		rootKey + configurationKeySeparatorConstant + tokenConfigurationKeyConstant:      defaults.Token,
		rootKey + configurationKeySeparatorConstant + apiBaseURLConfigurationKeyConstant: defaults.APIBaseURL,
	}
}

// sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Owner = strings.TrimSpace(configuration.Owner)
	sanitized.Repository = strings.TrimSpace(configuration.Repository)
	sanitized.Login = strings.TrimSpace(configuration.Login)
	sanitized.Token = strings.TrimSpace(configuration.Token)
	sanitized.APIBaseURL = strings.TrimSpace(configuration.APIBaseURL)

	return sanitized
}
