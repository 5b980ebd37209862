package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeMultiFieldToken(t *testing.T) {
	// Simple fields
	fields := []string{"field1", "field2", "field3"}
	token := EncodeMultiFieldToken(fields...)

	decodedFields, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, fields, decodedFields, "Fields should match after decode")

	// No fields: splitting the empty string yields one empty field
	emptyToken := EncodeMultiFieldToken()
	decodedEmpty, err := DecodeMultiFieldToken(emptyToken)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, []string{""}, decodedEmpty, "Should decode to slice with one empty string")

	// Fields containing the separator split on every pipe
	specialFields := []string{"field|with|pipes", "plain"}
	specialToken := EncodeMultiFieldToken(specialFields...)
	decodedSpecial, err := DecodeMultiFieldToken(specialToken)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Len(t, decodedSpecial, 4, "Should split on all pipe characters")

	// Timestamp plus identifier, the shape batch listing cursors use
	timestampStr := time.Now().UTC().Format(time.RFC3339Nano)
	timeToken := EncodeMultiFieldToken(timestampStr, "batch-123")
	decodedTime, err := DecodeMultiFieldToken(timeToken)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, []string{timestampStr, "batch-123"}, decodedTime)
}

func TestDecodeMultiFieldTokenError(t *testing.T) {
	_, err := DecodeMultiFieldToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")
}
