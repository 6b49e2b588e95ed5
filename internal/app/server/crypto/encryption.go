package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	keyLength = 32 // AES-256

	// параметры argon2id для ключа из парольной фразы
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
)

var (
	ErrInvalidKey         = errors.New("invalid server key (must be 32 bytes hex)")
	ErrMissingKey         = errors.New("server key or passphrase is required")
	ErrCiphertextTooShort = errors.New("ciphertext too short")
)

// keySalt фиксирован: ключ должен быть одинаковым между перезапусками
var keySalt = []byte("windkey/server-encryptor/v1")

// ServerEncryptor шифрует пароли перед записью в базу (AES-256-GCM).
type ServerEncryptor struct {
	aead cipher.AEAD
}

// NewServerEncryptor берёт hex-ключ, а если его нет, выводит ключ из парольной фразы.
func NewServerEncryptor(keyHex, passphrase string) (*ServerEncryptor, error) {
	var key []byte

	switch {
	case keyHex != "":
		decoded, err := hex.DecodeString(keyHex)
		if err != nil || len(decoded) != keyLength {
			return nil, ErrInvalidKey
		}
		key = decoded
	case passphrase != "":
		key = argon2.IDKey([]byte(passphrase), keySalt, argon2Time, argon2Memory, argon2Threads, keyLength)
	default:
		return nil, ErrMissingKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &ServerEncryptor{aead: gcm}, nil
}

// Encrypt возвращает hex(nonce || ciphertext)
func (e *ServerEncryptor) Encrypt(plaintext []byte) (string, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := e.aead.Seal(nonce, nonce, plaintext, nil)
	return hex.EncodeToString(ciphertext), nil
}

func (e *ServerEncryptor) Decrypt(ciphertextHex string) ([]byte, error) {
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex: %w", err)
	}

	nonceSize := e.aead.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, ErrCiphertextTooShort
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := e.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	return plaintext, nil
}
