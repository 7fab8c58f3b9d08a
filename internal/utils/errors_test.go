package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeTimeout, http.StatusGatewayTimeout},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(E(tc.code, "op", "msg", nil)))
		})
	}
}

func TestHTTPStatusWrappedAndSentinels(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", E(CodeNotFound, "CVService.Get", "cv not found", nil))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(wrapped))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrNotFound))
	assert.Equal(t, http.StatusConflict, HTTPStatus(fmt.Errorf("insert: %w", ErrConflict)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestAppErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := E(CodeInternal, "CVService.Generate", "CV generation failed", cause)

	assert.Equal(t, "CVService.Generate: CV generation failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsCode(err, CodeInternal))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.Equal(t, Code(""), CodeOf(cause))

	assert.Equal(t, "only message", E(CodeInternal, "", "only message", nil).Error())
	assert.Equal(t, "error", (&AppError{}).Error())
}

func TestPasswordHashing(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	hash, err := HashPassword("correct horse battery")
	assert.NoError(t, err)
	assert.True(t, CheckPassword(hash, "correct horse battery"))
	assert.False(t, CheckPassword(hash, "wrong password"))
	assert.False(t, CheckPassword("", "anything"))
}
