// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to application settings needed by different components while keeping
// configuration details separate from business logic.
//
// Environment variables use the TAREFAS_ prefix and the nested key path with
// dots replaced by underscores, e.g. TAREFAS_AUTH_JWT_SECRET.
package config
