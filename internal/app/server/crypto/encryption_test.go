package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestNewServerEncryptor(t *testing.T) {
	tests := []struct {
		name       string
		keyHex     string
		passphrase string
		wantErr    error
	}{
		{name: "hex key", keyHex: testKey},
		{name: "passphrase", passphrase: "correct horse battery staple"},
		{name: "short key", keyHex: "abcd", wantErr: ErrInvalidKey},
		{name: "not hex", keyHex: strings.Repeat("z", 64), wantErr: ErrInvalidKey},
		{name: "nothing configured", wantErr: ErrMissingKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := NewServerEncryptor(tt.keyHex, tt.passphrase)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, enc)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, enc)
		})
	}
}

func TestServerEncryptor_RoundTrip(t *testing.T) {
	enc, err := NewServerEncryptor(testKey, "")
	require.NoError(t, err)

	first, err := enc.Encrypt([]byte("s3cr3t!"))
	require.NoError(t, err)
	second, err := enc.Encrypt([]byte("s3cr3t!"))
	require.NoError(t, err)

	// random nonce per call
	assert.NotEqual(t, first, second)

	plain, err := enc.Decrypt(first)
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t!", string(plain))
}

func TestServerEncryptor_PassphraseIsStable(t *testing.T) {
	a, err := NewServerEncryptor("", "phrase")
	require.NoError(t, err)
	b, err := NewServerEncryptor("", "phrase")
	require.NoError(t, err)

	ct, err := a.Encrypt([]byte("value"))
	require.NoError(t, err)

	plain, err := b.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, "value", string(plain))
}

func TestServerEncryptor_DecryptErrors(t *testing.T) {
	enc, err := NewServerEncryptor(testKey, "")
	require.NoError(t, err)
	other, err := NewServerEncryptor("", "other")
	require.NoError(t, err)

	ct, err := other.Encrypt([]byte("value"))
	require.NoError(t, err)

	_, err = enc.Decrypt(ct)
	assert.Error(t, err)

	_, err = enc.Decrypt("zz")
	assert.Error(t, err)

	_, err = enc.Decrypt("abcd")
	assert.ErrorIs(t, err, ErrCiphertextTooShort)
}
