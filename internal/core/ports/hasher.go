package ports

// PasswordHasher is the one-way credential hashing contract. Verify must not
// leak timing information about partial hash matches, and must report a
// malformed stored hash as domain.ErrHashFormat instead of a plain mismatch.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) (bool, error)
}
