// Package config loads the shared configuration for the boka and mwl
// binaries.
//
// # Overview
//
// The myweblog library itself takes explicit options; this package exists
// so both binaries resolve credentials the same way. Configuration comes
// from two layers, applied in order:
//
//  1. A TOML file, ~/.config/boka/config.toml by default
//  2. Environment variables, which win over the file
//
// The binaries additionally load a .env file into the environment before
// calling Load, so a project-local .env behaves like exported variables.
//
// # TOML Format
//
// Example config.toml:
//
//	username = "sven"
//	password = "flyga123"
//	app_secret = "..."
//	base_url = "https://api.myweblog.se/api_mobile.php?version=2.0.3"
//	language = "se"
//	timeout = "10s"
//	poll_seconds = 60
//
// Every field is optional; a missing file is not an error, since the
// environment alone can carry a full configuration.
//
// # Environment Variables
//
//   - MYWEBLOG_USERNAME / MYWEBLOG_PASSWORD: account credentials
//   - MYWEBLOG_APP_SECRET: pre-shared secret for the token exchange
//   - MYWEBLOG_APPTOKEN: previously issued app token
//   - MYWEBLOG_BASE_URL: API endpoint override
//   - MYWEBLOG_LANGUAGE: language parameter sent on every request
//   - MYWEBLOG_TIMEOUT: per-request timeout ("10s", "1m")
//   - BOKA_POLL_SECONDS: booking manager refresh cadence
//
// # Validation
//
// Validate requires username, password, and one of app secret or app
// token. It is called by the binaries after flag parsing, so error
// messages name the environment variables a user would set to fix them.
package config
