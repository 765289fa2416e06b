// Package utils holds the ambient plumbing of the releasectl CLI: the
// Viper-backed ConfigurationLoader, the zap LoggerFactory, and the
// CommandContextAccessor that carries the resolved configuration file path
// through command execution contexts.
package utils
