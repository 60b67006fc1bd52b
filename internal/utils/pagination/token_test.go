package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Test case 1: Standard values
	createdAt := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)
	id := "c0a80121-7ac0-4e1c-9b5d-1d4b9f6f2a10"

	token := EncodeToken(createdAt, id)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedCreatedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")
	assert.Equal(t, id, decodedID, "Row id should match after decode")

	// Test case 2: Zero time values
	zeroTime := time.Time{}
	zeroToken := EncodeToken(zeroTime, "")
	decodedZeroTime, decodedZeroID, err := DecodeToken(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, zeroTime, decodedZeroTime, "Zero time should match after decode")
	assert.Equal(t, "", decodedZeroID, "Empty id should survive the round trip")

	// Test case 3: Current time values
	now := time.Now().UTC()
	nowToken := EncodeToken(now, id)
	decodedNowTime, decodedNowID, err := DecodeToken(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")

	// Due to potential nanosecond precision issues, use Equal instead of direct comparison
	assert.True(t, now.Equal(decodedNowTime), "Current time should match after decode")
	assert.Equal(t, id, decodedNowID, "Row id should match after decode")
}

func TestDecodeTokenError(t *testing.T) {
	// Test invalid base64
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test invalid format (missing separator)
	invalidToken := base64.StdEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z"))
	_, _, err = DecodeToken(invalidToken)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Test invalid time format
	invalidTimeToken := base64.StdEncoding.EncodeToString([]byte("notatime|some-row-id"))
	_, _, err = DecodeToken(invalidTimeToken)
	assert.Error(t, err, "Should return an error for invalid time format")
	assert.Contains(t, err.Error(), "created_at parse", "Error should mention time parsing issue")
}

func TestTokenIDMayContainSeparator(t *testing.T) {
	// Only the first separator splits; anything after it belongs to the id.
	createdAt := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)
	token := EncodeToken(createdAt, "id|with|pipes")

	decodedCreatedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.Equal(t, createdAt, decodedCreatedAt)
	assert.Equal(t, "id|with|pipes", decodedID)
}
