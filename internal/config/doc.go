// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to application settings needed by different components while keeping
// configuration details separate from business logic.
//
// Provider settings that may change at runtime live in a ProviderHolder,
// which swaps immutable snapshots.
package config
