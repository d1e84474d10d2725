package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig fills the fields validate requires so builder tests can focus
// on merge behavior.
func validConfig() *StructuredConfig {
	return &StructuredConfig{
		Auth: Auth{
			AccessTokenKey:  "access_secret",
			RefreshTokenKey: "refresh_secret",
		},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/habitrack"}},
	}
}

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_MergesMultipleConfigs(t *testing.T) {
	// First non-zero value wins: the DSN from the first config must not be
	// overwritten by the second.
	first := validConfig()
	second := &StructuredConfig{
		Storage: Storage{DB: DB{DSN: "postgres://other/db"}},
		Server:  Server{HTTPAddress: "localhost:9000"},
	}

	b := newConfigBuilder()
	b.configs = append(b.configs, first, second)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/habitrack", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, "access_secret", cfg.Auth.AccessTokenKey)
}

func TestBuild_AppliesDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, validConfig())

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, DefaultTokenIssuer, cfg.Auth.TokenIssuer)
	assert.Equal(t, DefaultAccessTokenDuration, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, DefaultRefreshTokenDuration, cfg.Auth.RefreshTokenDuration)
}

func TestBuild_DefaultsDoNotOverrideSetValues(t *testing.T) {
	explicit := validConfig()
	explicit.Server.HTTPAddress = "localhost:3000"
	explicit.Auth.AccessTokenDuration = time.Minute

	b := newConfigBuilder()
	b.configs = append(b.configs, explicit)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "localhost:3000", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Minute, cfg.Auth.AccessTokenDuration)
}

func TestBuild_ValidationFailure(t *testing.T) {
	// No DSN from any source fails validation.
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Auth: Auth{AccessTokenKey: "a", RefreshTokenKey: "b"},
	})

	_, err := b.build()
	require.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(_ *StructuredConfig) {},
		},
		{
			name:    "missing DSN",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing access token key",
			mutate:  func(cfg *StructuredConfig) { cfg.Auth.AccessTokenKey = "" },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "missing refresh token key",
			mutate:  func(cfg *StructuredConfig) { cfg.Auth.RefreshTokenKey = "" },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name: "shared signing keys",
			mutate: func(cfg *StructuredConfig) {
				cfg.Auth.RefreshTokenKey = cfg.Auth.AccessTokenKey
			},
			wantErr: ErrInvalidAuthConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
