package utils

import "context"

const (
	configurationFilePathContextKeyConstant = commandContextKey("releasectl.configurationFilePath")
)

type commandContextKey string

// CommandContextAccessor reads and writes releasectl values carried in
// command execution contexts. The root command stores the resolved
// configuration file path during initialization so later handlers can report
// which file produced their settings.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath returns a child context carrying the
// configuration file path. An empty path is stored as-is and reported as
// present, meaning no configuration file was used.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath reports the configuration file path stored in the
// context, with false when initialization never ran against this context.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, configurationFilePathAvailable := executionContext.Value(configurationFilePathContextKeyConstant).(string)
	if !configurationFilePathAvailable {
		return "", false
	}
	return configurationFilePath, true
}
