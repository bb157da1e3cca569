package service

// TokenProvider generates and digests the public values of single-use
// tokens. Generate returns the secret sent to the user; only Hash(secret)
// is ever persisted.
type TokenProvider interface {
	Generate() (string, error)
	Hash(secret string) string
}
