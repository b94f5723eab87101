package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"demo-bank/internal/domain"
)

// SessionCodec firma y verifica el token de sesión. El codec es la única
// autoridad sobre el vencimiento del token.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// SessionClaims es el conjunto de claims de una sesión verificada.
type SessionClaims struct {
	UserID    int64  `json:"uid"`
	UserXID   string `json:"user_xid"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	jwt.RegisteredClaims
}

var (
	ErrSessionInvalid = errors.New("session invalid")
	ErrSessionExpired = errors.New("session expired")
)

// SessionTTL es la vida absoluta de un token de sesión.
const SessionTTL = 7 * 24 * time.Hour

// NewSessionCodec construye el codec con el secreto inyectado. Un ttl <= 0
// usa el default de 7 días.
func NewSessionCodec(secret string, ttl time.Duration) *SessionCodec {
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &SessionCodec{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "demo-bank",
	}
}

// TTL devuelve la vida configurada del token, usada también por la cookie.
func (c *SessionCodec) TTL() time.Duration {
	return c.ttl
}

// Encode firma un token HS256 para el usuario con vencimiento absoluto.
func (c *SessionCodec) Encode(user domain.User) (string, time.Time, error) {
	if len(c.secret) == 0 {
		return "", time.Time{}, ErrSessionInvalid
	}
	now := time.Now().UTC()
	expiresAt := now.Add(c.ttl)
	claims := SessionClaims{
		UserID:    user.ID,
		UserXID:   user.UserID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Decode verifica firma y vencimiento. Cualquier fallo deja al llamador
// como anónimo; los errores son sentinelas, nunca pánicos.
func (c *SessionCodec) Decode(token string) (SessionClaims, error) {
	if len(c.secret) == 0 || strings.TrimSpace(token) == "" {
		return SessionClaims{}, ErrSessionInvalid
	}
	var claims SessionClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaims{}, ErrSessionExpired
		}
		return SessionClaims{}, ErrSessionInvalid
	}
	if claims.UserID == 0 || strings.TrimSpace(claims.Email) == "" {
		return SessionClaims{}, ErrSessionInvalid
	}
	return claims, nil
}
