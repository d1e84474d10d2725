package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.AccessTokenKey == "" || cfg.Auth.RefreshTokenKey == "" {
		return ErrInvalidAuthConfigs
	}

	// Shared secrets would let a refresh token pass for an access token.
	if cfg.Auth.AccessTokenKey == cfg.Auth.RefreshTokenKey {
		return ErrInvalidAuthConfigs
	}

	return nil
}
