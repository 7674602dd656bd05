package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	userID, sessionID := uuid.New(), uuid.New()

	raw, err := GenerateToken("secret", userID, "customer", sessionID, time.Now().Add(time.Hour))
	require.NoError(t, err)

	gotUser, gotSession, claims, err := ParseToken("secret", raw)
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, sessionID, gotSession)
	assert.Equal(t, "customer", claims.Role)

	_, _, _, err = ParseToken("other-secret", raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	raw, err := GenerateToken("secret", uuid.New(), "customer", uuid.New(), time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, _, _, err = ParseToken("secret", raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMalawiPhone(t *testing.T) {
	assert.True(t, IsMalawiPhone("+265991234567"))
	assert.True(t, IsMalawiPhone("+265 99 123 4567"))
	assert.True(t, IsMalawiPhone("+265-99-123-4567"))
	assert.False(t, IsMalawiPhone("0991234567"))
	assert.False(t, IsMalawiPhone("+26599123456"))
	assert.False(t, IsMalawiPhone("+2659912345678"))
}

func TestValidateStruct_Messages(t *testing.T) {
	type form struct {
		Phone string `validate:"required,mwphone"`
		Email string `validate:"required,email"`
	}

	errs := ValidateStruct(form{Phone: "12345", Email: "nope"})
	require.Len(t, errs, 2)
	assert.Equal(t, "Phone number must be in +265 format (e.g., +265123456789)", errs["Phone"])
	assert.Equal(t, "Invalid email format", errs["Email"])
	assert.Equal(t, "Email: Invalid email format; Phone: Phone number must be in +265 format (e.g., +265123456789)",
		FormatValidationErrors(errs))

	assert.Nil(t, ValidateStruct(form{Phone: "+265991234567", Email: "a@b.mw"}))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerators(t *testing.T) {
	assert.Regexp(t, `^TXN-[0-9a-f]{8}$`, GenerateTransactionID())
	assert.Regexp(t, `^PAY-[0-9A-F]{12}$`, GeneratePaymentID())
	assert.Equal(t, "ABCDEF12", ShortRef("0000-abcdef12"))
	assert.Equal(t, "AB", ShortRef("ab"))
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 3, ParseInt("3", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("x", 1))
	assert.Equal(t, 10, ParseInt("0", 10))
}
