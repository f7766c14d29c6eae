package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/phrazzld/productgen/internal/config"
	"github.com/phrazzld/productgen/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMint(t *testing.T) {
	t.Parallel()

	cfg := config.AuthConfig{
		JWTSecret:            "test-secret-that-is-at-least-32-characters",
		TokenLifetimeMinutes: 15,
	}

	var out bytes.Buffer
	require.NoError(t, mint(cfg, "ops@example.com", auth.RoleAdmin, &out))

	token := strings.TrimSpace(out.String())
	require.NotEmpty(t, token)

	jwtService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims.Subject)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestMint_InvalidSecret(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := mint(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 15}, "ops", auth.RoleAdmin, &out)
	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func TestRun_RequiresSubject(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := run([]string{"-role", "admin"}, &out)
	assert.ErrorContains(t, err, "-subject is required")
}
