package sharecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	code := Generate("match-123")
	assert.NotEmpty(t, code, "Encoded code should not be empty")
}

func TestGenerateIsUnique(t *testing.T) {
	assert.NotEqual(t, Generate("match-123"), Generate("match-123"))
}

func TestDecode(t *testing.T) {
	code := Generate("match-123")

	matchID, token, err := Decode(code)

	assert.Nil(t, err, "Should not have an error during decoding")
	assert.Equal(t, "match-123", matchID, "Decoded match ID should match the original")
	assert.NotEmpty(t, token)
}

func TestDecode_ErrorHandling(t *testing.T) {
	_, _, err := Decode("this is not a base64 string")
	assert.NotNil(t, err, "Expected an error for incorrect base64 string")
}
