package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"missing fields", "", "", ""},
		{"short username", "ab", "ab@example.com", "secret1"},
		{"short password", "alice", "alice@example.com", "12345"},
		{"bad email", "alice", "not-an-email", "secret1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.email, tc.password)
			assert.Equal(t, KindInvalid, KindOf(err))
		})
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other@example.com", "secret1")
	assert.Equal(t, KindInvalid, KindOf(err))
	assert.EqualError(t, err, "Username already exists")

	_, err = svc.Register(ctx, "alice2", "ALICE@example.com", "secret1")
	assert.Equal(t, KindInvalid, KindOf(err))
	assert.EqualError(t, err, "Email already registered")
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	created, err := svc.Register(ctx, "alice", "Alice@Example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", created.Email)

	// By username.
	user, err := svc.Authenticate(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	// By email.
	user, err = svc.Authenticate(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	assert.Equal(t, KindUnauthorized, KindOf(err))

	_, err = svc.Authenticate(ctx, "nobody", "secret1")
	assert.Equal(t, KindUnauthorized, KindOf(err))
}
