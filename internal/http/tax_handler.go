package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"demo-bank/internal/domain"
	"demo-bank/internal/service"
	"demo-bank/internal/taxfiling"
)

// TaxHandler mantiene dependencias para la integración de declaraciones.
type TaxHandler struct {
	logger  *zap.Logger
	taxServ *service.TaxService
	client  *taxfiling.Client
}

// NewTaxHandler crea una instancia de TaxHandler con dependencias necesarias.
func NewTaxHandler(logger *zap.Logger, taxServ *service.TaxService, client *taxfiling.Client) *TaxHandler {
	return &TaxHandler{
		logger:  logger,
		taxServ: taxServ,
		client:  client,
	}
}

// FileTaxPage maneja GET /file-tax.
func (h *TaxHandler) FileTaxPage(c *gin.Context) {
	claims, _ := CurrentClaims(c)
	c.JSON(http.StatusOK, gin.H{
		"page":       "file-tax",
		"firstName":  claims.FirstName,
		"configured": h.client.Configured(),
	})
}

// LoginURL maneja POST /api/tax-login-url.
func (h *TaxHandler) LoginURL(c *gin.Context) {
	claims, ok := CurrentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	loginURL, err := h.taxServ.LoginURL(c.Request.Context(), claims.UserID)
	if err != nil {
		var uerr *taxfiling.UpstreamError
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, taxfiling.ErrNotConfigured):
			h.logger.Error("tax integration not configured")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
		case errors.As(err, &uerr):
			// El detalle del upstream queda sólo en los logs del cliente.
			c.JSON(uerr.Status, gin.H{"error": "Failed to get tax filing URL"})
		default:
			h.logger.Error("tax login url failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"login_url": loginURL})
}

// ListReturns maneja GET /api/tax-returns.
func (h *TaxHandler) ListReturns(c *gin.Context) {
	claims, ok := CurrentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	returns, err := h.taxServ.ListReturns(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list tax returns failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tax returns"})
		return
	}
	if returns == nil {
		returns = []domain.TaxReturn{}
	}
	c.JSON(http.StatusOK, gin.H{"taxReturns": returns})
}
