package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Rutas de página protegidas (por prefijo) y de entrada de autenticación
// (por coincidencia exacta).
var (
	protectedPrefixes = []string{"/dashboard", "/personal-info", "/file-tax"}
	authEntryPaths    = []string{"/login", "/register"}
)

// RouteGuard redirige a /login los accesos anónimos a rutas protegidas y a
// /dashboard los accesos autenticados a las rutas de entrada. Cualquier otra
// combinación pasa sin tocar.
func RouteGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		_, authenticated := CurrentClaims(c)

		if isProtectedPath(path) && !authenticated {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if isAuthEntryPath(path) && authenticated {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

func isProtectedPath(path string) bool {
	for _, prefix := range protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func isAuthEntryPath(path string) bool {
	for _, p := range authEntryPaths {
		if path == p {
			return true
		}
	}
	return false
}
