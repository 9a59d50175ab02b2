// Package config loads the lostfound client configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/lostfound/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. Empty or non-positive fields keep their defaults
//  5. LOSTFOUND_API_BASE and LOSTFOUND_LOG_DIR override the file
//
// The CLI loads a .env file from the working directory before Load runs, so
// the overrides can live there.
//
// # Default Values
//
//   - API base: 127.0.0.1:5001 (http:// is assumed when no scheme is given)
//   - Asset path: /static/uploads
//   - Log directory: ~/.local/share/lostfound/logs
//   - Request timeout: none
//   - Error banner: 5s, success banner: 3s
//
// # TOML Format
//
//	api_base = "http://127.0.0.1:5001"
//	asset_path = "/static/uploads"
//	log_dir = "~/.local/share/lostfound/logs"
//	request_timeout_seconds = 0
//	error_banner_seconds = 5
//	success_banner_seconds = 3
//
// # Path Expansion
//
// Paths starting with ~ are expanded to the user's home directory and made
// absolute.
package config
