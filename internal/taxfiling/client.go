package taxfiling

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrNotConfigured indica que falta configuración del proveedor (host,
// client id o secreto compartido).
var ErrNotConfigured = errors.New("tax provider not configured")

// UpstreamError representa una respuesta no-2xx del proveedor.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("tax provider error: status=%d", e.Status)
}

// LoginURLPayload es el cuerpo firmado del POST /api/user-login-url.
// Los campos opcionales se omiten en lugar de viajar como null.
type LoginURLPayload struct {
	UserID         string           `json:"user_id"`
	UserEmail      string           `json:"user_email"`
	TaxProvince    string           `json:"tax_province,omitempty"`
	Year           int              `json:"year,omitempty"`
	PersonalInfo   *PayloadPersonal `json:"personal_info,omitempty"`
	MailingAddress *PayloadAddress  `json:"mailing_address,omitempty"`
}

// PayloadPersonal es la sección personal_info del payload saliente.
type PayloadPersonal struct {
	FirstName             string `json:"first_name"`
	MiddleName            string `json:"middle_name,omitempty"`
	LastName              string `json:"last_name"`
	DateOfBirth           string `json:"date_of_birth,omitempty"`
	SocialInsuranceNumber int64  `json:"social_insurance_number,omitempty"`
	MaritalStatus         string `json:"marital_status,omitempty"`
}

// PayloadAddress es la sección mailing_address del payload saliente.
type PayloadAddress struct {
	AddressLine1 string `json:"address_line_1,omitempty"`
	UnitNo       string `json:"unit_no"`
	StreetName   string `json:"street_name"`
	City         string `json:"city"`
	Province     string `json:"province"`
	PostalCode   string `json:"postal_code"`
}

// Client habla con la API del proveedor de declaraciones usando peticiones
// firmadas con HMAC-SHA256.
type Client struct {
	host     string
	clientID string
	secret   string
	baseURL  string
	client   *http.Client
	logger   *zap.Logger
}

// NewClient construye un cliente con timeout acotado hacia el proveedor.
func NewClient(host, clientID, secret string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		host:     host,
		clientID: clientID,
		secret:   secret,
		baseURL:  "https://" + host,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Configured indica si el cliente tiene host, client id y secreto.
func (c *Client) Configured() bool {
	return c.host != "" && c.clientID != "" && c.secret != ""
}

// LoginURL pide al proveedor la URL de login hospedada para el usuario.
// La firma se calcula sobre los mismos bytes que viajan en el cuerpo.
func (c *Client) LoginURL(ctx context.Context, payload LoginURLPayload) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/user-login-url", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("HMAC-SHA256 clientId=%s&signature=%s", c.clientID, Sign(c.secret, body)))

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if c.logger != nil {
			c.logger.Error("tax provider error",
				zap.Int("status", resp.StatusCode),
				zap.ByteString("body", respBody),
			)
		}
		return "", &UpstreamError{Status: resp.StatusCode}
	}

	var out struct {
		LoginURL string `json:"login_url"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if out.LoginURL == "" {
		return "", errors.New("tax provider response missing login_url")
	}
	return out.LoginURL, nil
}
