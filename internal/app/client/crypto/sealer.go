package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	keyLength      = 32 // AES-256
	keyPermissions = 0o600
)

var ErrCiphertextTooShort = errors.New("шифротекст слишком короткий")

// Sealer шифрует локальный кэш ключом устройства
type Sealer struct {
	gcm cipher.AEAD
}

func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != keyLength {
		return nil, fmt.Errorf("ключ должен быть %d байт, получено %d", keyLength, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания GCM: %w", err)
	}

	return &Sealer{gcm: gcm}, nil
}

// LoadOrCreateKey читает hex-ключ из файла или создаёт новый с правами 0600
func LoadOrCreateKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		key, err := hex.DecodeString(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, fmt.Errorf("ошибка декодирования ключа: %w", err)
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("ошибка чтения ключа: %w", err)
	}

	key := make([]byte, keyLength)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("ошибка генерации ключа: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("ошибка создания директории: %w", err)
	}
	if err := os.WriteFile(path, []byte(hex.EncodeToString(key)), keyPermissions); err != nil {
		return nil, fmt.Errorf("ошибка сохранения ключа: %w", err)
	}

	return key, nil
}

// Seal возвращает hex(nonce || ciphertext)
func (s *Sealer) Seal(plaintext []byte) (string, error) {
	nonce := make([]byte, s.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("ошибка генерации nonce: %w", err)
	}

	return hex.EncodeToString(s.gcm.Seal(nonce, nonce, plaintext, nil)), nil
}

func (s *Sealer) Open(sealed string) ([]byte, error) {
	data, err := hex.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования hex: %w", err)
	}

	nonceSize := s.gcm.NonceSize()
	if len(data) < nonceSize {
		return nil, ErrCiphertextTooShort
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := s.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка расшифровки: %w", err)
	}

	return plaintext, nil
}
