package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	occurredAt := time.Date(2024, 6, 1, 10, 30, 0, 123456789, time.UTC)
	createdAt := time.Date(2024, 6, 1, 10, 30, 5, 987654321, time.UTC)

	token := EncodeToken(occurredAt, createdAt)
	require.NotEmpty(t, token)

	gotOccurred, gotCreated, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, occurredAt.Equal(gotOccurred))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := DecodeToken("not-base64!!")
	assert.Error(t, err)

	_, _, err = DecodeToken("aGVsbG8=") // decodes but has no separator
	assert.Error(t, err)
}
