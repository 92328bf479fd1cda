package accessCode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCode(t *testing.T) {
	encodedCode := GenerateCode("admin")
	assert.NotEmpty(t, encodedCode, "Encoded code should not be empty")
}

func TestDecode(t *testing.T) {
	// First, generate a code
	encodedCode := GenerateCode("admin")

	// Now, decode the encoded code
	role, uniqueID, err := Decode(encodedCode)

	assert.Nil(t, err, "Should not have an error during decoding")
	assert.Equal(t, "admin", role, "Decoded role should match the original")
	assert.NotEmpty(t, uniqueID, "Decoded unique ID should not be empty")
}

func TestDecode_Uniqueness(t *testing.T) {
	first := GenerateCode("admin")
	second := GenerateCode("admin")
	assert.NotEqual(t, first, second, "Two codes should never collide")
}

func TestDecode_ErrorHandling(t *testing.T) {
	// Pass an incorrectly formatted string
	_, _, err := Decode("this is not a base64 string")
	assert.NotNil(t, err, "Expected an error for incorrect base64 string")

	// Valid base64 but missing the separator
	_, _, err = Decode("bm9zZXBhcmF0b3I=")
	assert.NotNil(t, err, "Expected an error for a code without a separator")
}
