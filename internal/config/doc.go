// Package config provides configuration loading, merging, and validation
// for the mobile-messaging client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables, with an optional .env file
//  2. Command-line flags
//  3. JSON or YAML config file
//
// The entry point is [GetStructuredConfig].
package config
