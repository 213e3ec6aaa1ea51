// Package config loads the bloglist client configuration.
//
// # Discovery
//
// Load resolves the file in this order:
//
//  1. An explicit path, when given (the --config flag)
//  2. ~/.config/bloglist/config.toml
//
// A missing file is not an error; Default is returned instead so the client
// works against a local backend with no setup. Blank string values fall back
// to their defaults. Numeric keys that are present are kept as written, so
// notification_seconds = 0 really does mean "never expire".
//
// # Keys
//
//	api_url = "http://localhost:3003"
//	session_path = "~/.config/bloglist/session.toml"
//	log_file = "~/.local/state/bloglist/bloglist.log"
//	log_level = "info"
//	notification_seconds = 5
//	refresh_seconds = 0
//	request_timeout_seconds = 5
//
// Path values get tilde expansion and are made absolute. Negative durations
// are rejected by Validate.
//
// # Errors
//
// Load fails when the home directory cannot be resolved, when the file exists
// but cannot be read, when the TOML is malformed, or when validation fails.
package config
