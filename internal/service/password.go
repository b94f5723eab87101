package service

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Parámetros de derivación; cambiarlos invalida los hashes ya almacenados.
const (
	passwordSaltLen    = 16
	passwordIterations = 100000
	passwordKeyLen     = 64
)

// HashPassword deriva un hash PBKDF2-SHA512 con sal aleatoria y devuelve
// el registro en formato saltHex:hashHex.
func HashPassword(password string) (string, error) {
	salt := make([]byte, passwordSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, passwordIterations, passwordKeyLen, sha512.New)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// VerifyPassword re-deriva con la sal almacenada y compara en tiempo
// constante. Un registro malformado devuelve false, nunca un error.
func VerifyPassword(password, record string) bool {
	saltHex, hashHex, ok := strings.Cut(record, ":")
	if !ok || saltHex == "" || hashHex == "" {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	stored, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}
	derived := pbkdf2.Key([]byte(password), salt, passwordIterations, len(stored), sha512.New)
	return subtle.ConstantTimeCompare(derived, stored) == 1
}
