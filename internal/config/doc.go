// Package config provides configuration for the URL threat-scoring
// engine: strategy selection, model bundle and history database
// locations, and the trusted-domain allowlist.
//
// Configuration is resolved in the usual order: built-in defaults, then
// the optional ".urlsentry" YAML file (current directory, then home),
// then command-line flags. The allowlist deliberately lives in the config
// file rather than in code so list changes never require a rebuild; the
// compiled-in entries are only the fallback when no file is present.
package config
