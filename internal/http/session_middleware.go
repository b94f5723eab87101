package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"demo-bank/internal/service"
)

const (
	sessionCookieName = "session"
	sessionClaimsKey  = "session_claims"
)

// SessionMiddleware decodifica la cookie de sesión una sola vez por request
// y memoiza los claims en el contexto. Un token válido se re-emite con
// vencimiento de cookie extendido; uno inválido o vencido se destruye y el
// llamador queda anónimo.
func SessionMiddleware(codec *service.SessionCodec, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, derr := codec.Decode(token)
		if derr != nil {
			clearSessionCookie(c, secureCookies)
			c.Next()
			return
		}

		c.Set(sessionClaimsKey, claims)
		setSessionCookie(c, token, int(codec.TTL().Seconds()), secureCookies)
		c.Next()
	}
}

// CurrentClaims devuelve los claims memoizados del request, si los hay.
func CurrentClaims(c *gin.Context) (service.SessionClaims, bool) {
	val, ok := c.Get(sessionClaimsKey)
	if !ok {
		return service.SessionClaims{}, false
	}
	claims, ok := val.(service.SessionClaims)
	return claims, ok
}

func setSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, maxAge, "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", secure, true)
}
