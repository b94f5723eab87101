package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"demo-bank/internal/service"
)

// AccountHandler mantiene dependencias para las páginas de cuenta y el
// formulario de información personal.
type AccountHandler struct {
	logger      *zap.Logger
	profileServ *service.ProfileService
}

// NewAccountHandler crea una instancia de AccountHandler con dependencias necesarias.
func NewAccountHandler(logger *zap.Logger, profileServ *service.ProfileService) *AccountHandler {
	return &AccountHandler{
		logger:      logger,
		profileServ: profileServ,
	}
}

// demoAccount y demoTransaction son los datos estáticos del dashboard.
type demoAccount struct {
	Name    string  `json:"name"`
	Number  string  `json:"number"`
	Balance float64 `json:"balance"`
	Type    string  `json:"type"`
}

type demoTransaction struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
}

var demoAccounts = []demoAccount{
	{Name: "Chequing Account", Number: "****1234", Balance: 12458.92, Type: "chequing"},
	{Name: "Savings Account", Number: "****5678", Balance: 45230.15, Type: "savings"},
	{Name: "TFSA", Number: "****9012", Balance: 28750.00, Type: "tfsa"},
	{Name: "RRSP", Number: "****3456", Balance: 89125.50, Type: "rrsp"},
}

var demoTransactions = []demoTransaction{
	{ID: 1, Description: "Amazon.ca", Amount: -156.99, Date: "2026-01-09", Category: "Shopping"},
	{ID: 2, Description: "Payroll Deposit", Amount: 3250.00, Date: "2026-01-08", Category: "Income"},
	{ID: 3, Description: "Hydro One", Amount: -145.23, Date: "2026-01-07", Category: "Utilities"},
	{ID: 4, Description: "Loblaws", Amount: -89.45, Date: "2026-01-06", Category: "Groceries"},
	{ID: 5, Description: "E-Transfer from John", Amount: 200.00, Date: "2026-01-05", Category: "Transfer"},
}

// Dashboard maneja GET /dashboard.
func (h *AccountHandler) Dashboard(c *gin.Context) {
	claims, _ := CurrentClaims(c)

	total := 0.0
	for _, a := range demoAccounts {
		total += a.Balance
	}

	c.JSON(http.StatusOK, gin.H{
		"firstName":    claims.FirstName,
		"accounts":     demoAccounts,
		"transactions": demoTransactions,
		"totalBalance": total,
	})
}

// PersonalInfoPage maneja GET /personal-info.
func (h *AccountHandler) PersonalInfoPage(c *gin.Context) {
	claims, _ := CurrentClaims(c)

	user, info, err := h.profileServ.GetWithUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("load personal info failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "personalInfo": info})
}

// UpdatePersonalInfo maneja POST /personal-info.
func (h *AccountHandler) UpdatePersonalInfo(c *gin.Context) {
	claims, _ := CurrentClaims(c)

	var req struct {
		FirstName             string `form:"firstName" json:"firstName"`
		MiddleName            string `form:"middleName" json:"middleName"`
		LastName              string `form:"lastName" json:"lastName"`
		DateOfBirth           string `form:"dateOfBirth" json:"dateOfBirth"`
		SocialInsuranceNumber string `form:"socialInsuranceNumber" json:"socialInsuranceNumber"`
		MaritalStatus         string `form:"maritalStatus" json:"maritalStatus"`
		ResProvince           string `form:"resProvince" json:"resProvince"`
		AddressLine1          string `form:"addressLine1" json:"addressLine1"`
		UnitNo                string `form:"unitNo" json:"unitNo"`
		StreetName            string `form:"streetName" json:"streetName"`
		City                  string `form:"city" json:"city"`
		Province              string `form:"province" json:"province"`
		PostalCode            string `form:"postalCode" json:"postalCode"`
	}
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid personal info request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	_, err := h.profileServ.Update(c.Request.Context(), claims.UserID, service.PersonalInfoInput{
		FirstName:             req.FirstName,
		MiddleName:            req.MiddleName,
		LastName:              req.LastName,
		DateOfBirth:           req.DateOfBirth,
		SocialInsuranceNumber: req.SocialInsuranceNumber,
		MaritalStatus:         req.MaritalStatus,
		ResProvince:           req.ResProvince,
		AddressLine1:          req.AddressLine1,
		UnitNo:                req.UnitNo,
		StreetName:            req.StreetName,
		City:                  req.City,
		Province:              req.Province,
		PostalCode:            req.PostalCode,
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
			return
		}
		h.logger.Error("update personal info failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while updating your information."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Personal information updated successfully.",
	})
}

// UserData maneja GET /api/user-data.
func (h *AccountHandler) UserData(c *gin.Context) {
	claims, ok := CurrentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	user, info, err := h.profileServ.GetWithUser(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("fetch user data failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "personalInfo": info})
}
