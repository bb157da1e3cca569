package service

// PasswordHasher is the domain contract for credential hashing. All
// comparisons go through Compare; the domain never compares plaintext.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(plain, digest string) bool
}
