package token

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SignAndParse(t *testing.T) {
	m := NewManager("secret", time.Hour)

	signed, expires, err := m.Sign("sess-1")
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	sid, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", sid)
}

func TestManager_ParseRejectsOtherSecret(t *testing.T) {
	signed, _, err := NewManager("secret", time.Hour).Sign("sess-1")
	require.NoError(t, err)

	_, err = NewManager("other", time.Hour).Parse(signed)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestManager_ParseRejectsExpired(t *testing.T) {
	m := NewManager("secret", time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	signed, _, err := m.Sign("sess-1")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(signed)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestManager_ParseRejectsGarbage(t *testing.T) {
	_, err := NewManager("secret", time.Hour).Parse("not-a-token")
	assert.Error(t, err)
}
