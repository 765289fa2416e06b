package releaseflow

import (
	"go.uber.org/zap"

	"github.com/release-tools/releasectl/internal/githubrepo"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// RepositoryGatewayProvider builds the repository gateway a command operates
// against. Tests substitute stub gateways through it.
type RepositoryGatewayProvider func(configuration CommandConfiguration) (RepositoryGateway, error)

func (dependencies BuilderDependencies) resolveLogger() *zap.Logger {
	if dependencies.LoggerProvider == nil {
		return zap.NewNop()
	}

	commandLogger := dependencies.LoggerProvider()
	if commandLogger == nil {
		return zap.NewNop()
	}

	return commandLogger
}

func (dependencies BuilderDependencies) resolveConfiguration() CommandConfiguration {
	if dependencies.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return dependencies.ConfigurationProvider().sanitize()
}

func (dependencies BuilderDependencies) resolveGateway(configuration CommandConfiguration) (RepositoryGateway, error) {
	if dependencies.GatewayProvider != nil {
		return dependencies.GatewayProvider(configuration)
	}

	return githubrepo.NewClient(githubrepo.Configuration{
		Owner:      configuration.Owner,
		Repository: configuration.Repository,
		Login:      configuration.Login,
		Token:      configuration.Token,
		APIBaseURL: configuration.APIBaseURL,
	}, nil)
}

func (dependencies BuilderDependencies) resolveService() (*Service, error) {
	configuration := dependencies.resolveConfiguration()

	repositoryGateway, gatewayError := dependencies.resolveGateway(configuration)
	if gatewayError != nil {
		return nil, gatewayError
	}

	return NewService(ServiceDependencies{
		Repository: repositoryGateway,
		Logger:     dependencies.resolveLogger(),
	})
}
