package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"demo-bank/internal/service"
	"demo-bank/internal/taxfiling"
)

// WebhookHandler recibe eventos firmados del proveedor de declaraciones.
type WebhookHandler struct {
	logger  *zap.Logger
	secret  string
	taxServ *service.TaxService
}

// NewWebhookHandler crea una instancia de WebhookHandler con el secreto compartido.
func NewWebhookHandler(logger *zap.Logger, secret string, taxServ *service.TaxService) *WebhookHandler {
	return &WebhookHandler{
		logger:  logger,
		secret:  secret,
		taxServ: taxServ,
	}
}

// Handle maneja POST /api/webhook. La firma se verifica sobre los bytes
// crudos recibidos, antes de cualquier parseo JSON: reserializar cambiaría
// orden de campos y espacios e invalidaría la firma.
func (h *WebhookHandler) Handle(c *gin.Context) {
	if h.secret == "" {
		h.logger.Error("webhook secret not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
		return
	}

	signature := c.GetHeader("x-signature")
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil || signature == "" || len(rawBody) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	if !taxfiling.VerifySignature(h.secret, rawBody, signature) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		return
	}

	var event taxfiling.Event
	if err := json.Unmarshal(rawBody, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		return
	}

	switch event.Type {
	case taxfiling.EventReturnCreated, taxfiling.EventReturnStatusChanged:
		if err := h.taxServ.Apply(c.Request.Context(), event, rawBody); err != nil {
			h.logger.Error("webhook processing error", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process webhook"})
			return
		}
	case taxfiling.EventWebhookTest:
		// Sin efecto, sólo acuse de recibo.
	default:
		// Tipos desconocidos se acusan con éxito: el proveedor no debe
		// reintentar un tipo introducido después.
		h.logger.Info("unknown webhook event type acknowledged", zap.String("type", event.Type))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
