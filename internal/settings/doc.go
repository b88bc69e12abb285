// Package settings turns the viper configuration into typed settings for
// the translation provider, the orchestrator and the history store.
package settings
