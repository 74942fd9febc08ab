package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMeta(t *testing.T) {
	assert.Equal(t, Meta{Page: 1, Limit: 10, TotalRecords: 21, TotalPages: 3}, NewMeta(1, 10, 21))
	assert.Equal(t, 0, NewMeta(1, 0, 5).TotalPages)
}

func TestParseTokenClaimFromContext(t *testing.T) {
	assert.Nil(t, ParseTokenClaimFromContext(context.Background()))

	claim := &TokenClaim{Role: RoleCoach}
	claim.Subject = "u1"
	ctx := SetToContext(context.Background(), ContextKeyTokenClaim, claim)
	got := ParseTokenClaimFromContext(ctx)
	assert.Equal(t, "u1", got.UserID())
	assert.Equal(t, RoleCoach, got.Role)
}
