package credential

import "context"

type Repository interface {
	Create(ctx context.Context, c Credential) (Credential, error)
	List(ctx context.Context, userID int, filter ListFilter) ([]Credential, error)
	Find(ctx context.Context, userID, id int) (Credential, error)
	Update(ctx context.Context, c Credential) error
	Delete(ctx context.Context, userID, id int) error
	ListEncrypted(ctx context.Context, userID int) ([]string, error)
}

// CategoryOwnership reports whether a category belongs to a user.
type CategoryOwnership interface {
	Owns(ctx context.Context, userID, categoryID int) (bool, error)
}

// Encryptor protects passwords at rest.
type Encryptor interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(ciphertext string) ([]byte, error)
}
