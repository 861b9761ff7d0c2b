// Package config loads runtime configuration for the signlink terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables with the SIGNLINK_ prefix, e.g. SIGNLINK_BASE_URL,
//     SIGNLINK_REQUEST_TIMEOUT=20s, SIGNLINK_STORE_BACKEND=redis.
//  3. Optional config file selected with -c or -config. JSON by default,
//     YAML when the name ends in .yaml or .yml.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend base url
//	-t int      request timeout (seconds)
//	-s string   credential store backend (sqlite, redis, memory)
//	-p string   sqlite store path
//
// # File schema
//
//	{
//	  "base_url": "http://127.0.0.1:8000/api",
//	  "request_timeout": "15s",
//	  "store_backend": "sqlite",
//	  "store_path": "session.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_prefix": "signlink:",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
