package crypto

import "golang.org/x/crypto/argon2"

// DeriveKey stretches the configured session secret into a 32-byte key for
// the given purpose (e.g. "auth", "encryption"), so the two cookie-store
// keys never coincide. Argon2id parameters: 1 pass, 64MB memory, 4 threads.
func DeriveKey(secret, purpose string) []byte {
	return argon2.IDKey([]byte(secret), []byte(purpose), 1, 64*1024, 4, 32)
}
