package auth

import (
	"context"
	"errors"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIDTokens struct {
	tok *fbauth.Token
	err error
	got string
}

func (s *stubIDTokens) VerifyIDToken(_ context.Context, idToken string) (*fbauth.Token, error) {
	s.got = idToken
	return s.tok, s.err
}

func TestFirebaseVerifier_MapsClaims(t *testing.T) {
	stub := &stubIDTokens{tok: &fbauth.Token{
		UID: "firebase-uid-1",
		Claims: map[string]interface{}{
			"email":          "jane@example.com",
			"email_verified": true,
			"name":           "Jane Doe",
			"picture":        "https://img.example.com/jane.png",
		},
	}}
	v := &FirebaseVerifier{client: stub}

	id, err := v.Verify(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, "id-token", stub.got)
	assert.Equal(t, &Identity{
		UID:           "firebase-uid-1",
		Email:         "jane@example.com",
		EmailVerified: true,
		Name:          "Jane Doe",
		Picture:       "https://img.example.com/jane.png",
	}, id)
}

func TestFirebaseVerifier_MissingClaimsAreEmpty(t *testing.T) {
	v := &FirebaseVerifier{client: &stubIDTokens{tok: &fbauth.Token{UID: "uid-2", Claims: map[string]interface{}{"email_verified": "yes"}}}}

	id, err := v.Verify(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, "uid-2", id.UID)
	assert.Empty(t, id.Email)
	assert.False(t, id.EmailVerified)
}

func TestFirebaseVerifier_Rejects(t *testing.T) {
	v := &FirebaseVerifier{client: &stubIDTokens{err: errors.New("ID token has expired")}}
	_, err := v.Verify(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Contains(t, err.Error(), "expired")

	v = &FirebaseVerifier{client: &stubIDTokens{tok: &fbauth.Token{}}}
	_, err = v.Verify(context.Background(), "no-subject")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewFirebaseVerifier_RequiresProject(t *testing.T) {
	_, err := NewFirebaseVerifier(context.Background(), "")
	assert.Error(t, err)
}
