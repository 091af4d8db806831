// Package config loads, merges and validates the zk-vault configuration.
//
// Sources, lowest to highest priority:
//  1. Built-in defaults
//  2. JSON config file (path from CONFIG, -c/-config or --config)
//  3. Environment variables
//  4. Command-line flags (server) or CLI overrides (client)
//
// The entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the CLI.
package config
