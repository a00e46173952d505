// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources. For every non-zero field
// the first source in this list wins:
//  1. Command-line flags
//  2. Environment variables
//  3. JSON config file
//
// Fields no source sets fall back to package defaults. The main entry points
// are [GetStructuredConfig] for the server and [GetClientConfig] for the
// command-line client.
package config
