// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Connection string (required)
  - DatabaseType: sqlite (default) or postgres
  - JWTSecret: HS256 signing secret for bearer tokens (required)
  - TokenTTL: Lifetime of issued tokens (default: 1h)
  - RateLimit, RateBurst: Per-client token bucket (default: 10/s, burst 20)
  - Env: Deployment name reported by /health (default: development)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	--env         Environment name
	--jwt-secret  JWT signing secret
	--token-ttl   Token lifetime (Go duration)
	--rate-limit  Requests per second per client
	--rate-burst  Burst size per client

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	APP_ENV       → --env
	JWT_SECRET    → --jwt-secret
	TOKEN_TTL     → --token-ttl
	RATE_LIMIT    → --rate-limit
	RATE_BURST    → --rate-burst

CLI flags take precedence over environment variables. main loads a .env
file first, so values there behave like real environment variables.

# Validation

ParseFlags returns an error if DATABASE_URL or JWT_SECRET is missing, if the
database type is unknown, or if a numeric value does not parse.
*/
package cliparse
