package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"demo-bank/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	codec *service.SessionCodec,
	secureCookies bool,
	authH *AuthHandler,
	accountH *AccountHandler,
	taxH *TaxHandler,
	webhookH *WebhookHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares básicos: logging, recovery, sesión y guardia de rutas.
	r.Use(
		zapLoggerMiddleware(logger),
		gin.Recovery(),
		SessionMiddleware(codec, secureCookies),
		RouteGuard(),
	)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "demo-bank"})
	})

	// Páginas de entrada y acciones de autenticación.
	r.GET("/login", authH.ShowLogin)
	r.POST("/login", authH.Login)
	r.GET("/register", authH.ShowRegister)
	r.POST("/register", authH.Register)
	r.POST("/logout", authH.Logout)

	// Páginas protegidas por la guardia de rutas.
	r.GET("/dashboard", accountH.Dashboard)
	r.GET("/personal-info", accountH.PersonalInfoPage)
	r.POST("/personal-info", accountH.UpdatePersonalInfo)
	r.GET("/file-tax", taxH.FileTaxPage)

	// API JSON.
	api := r.Group("/api")
	api.GET("/user-data", accountH.UserData)
	api.POST("/tax-login-url", taxH.LoginURL)
	api.GET("/tax-returns", taxH.ListReturns)
	api.POST("/webhook", webhookH.Handle)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
