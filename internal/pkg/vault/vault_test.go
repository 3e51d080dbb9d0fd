package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVault_SealOpen(t *testing.T) {
	v, err := New("secret")
	require.NoError(t, err)

	box, err := v.Seal([]byte("upstream-token"))
	require.NoError(t, err)
	assert.NotContains(t, string(box), "upstream-token")

	out, err := v.Open(box)
	require.NoError(t, err)
	assert.Equal(t, "upstream-token", string(out))

	again, err := v.Seal([]byte("upstream-token"))
	require.NoError(t, err)
	assert.NotEqual(t, box, again)
}

func TestVault_OpenRejectsTampering(t *testing.T) {
	v, err := New("secret")
	require.NoError(t, err)
	other, err := New("other")
	require.NoError(t, err)

	box, err := v.Seal([]byte("token"))
	require.NoError(t, err)

	_, err = other.Open(box)
	assert.ErrorIs(t, err, ErrOpen)

	box[len(box)-1] ^= 0xff
	_, err = v.Open(box)
	assert.ErrorIs(t, err, ErrOpen)

	_, err = v.Open([]byte("short"))
	assert.ErrorIs(t, err, ErrOpen)
}

func TestNew_EmptySecret(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
