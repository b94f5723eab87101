package taxfiling

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign calcula la firma HMAC-SHA256 en hex sobre los bytes exactos del cuerpo.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compara en tiempo constante la firma recibida contra la
// esperada. La comparación opera sobre los bytes decodificados; cualquier
// hex inválido o diferencia de longitud rechaza.
func VerifySignature(secret string, body []byte, providedHex string) bool {
	provided, err := hex.DecodeString(providedHex)
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(Sign(secret, body))
	if err != nil {
		return false
	}
	if len(provided) != len(expected) {
		return false
	}
	return hmac.Equal(provided, expected)
}
