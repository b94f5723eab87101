package domain

import "time"

// MailingAddress es la dirección postal asociada al perfil personal.
// Se persiste como un blob JSON dentro de personal_info.
type MailingAddress struct {
	AddressLine1 string `json:"address_line_1"`
	UnitNo       string `json:"unit_no"`
	StreetName   string `json:"street_name"`
	City         string `json:"city"`
	Province     string `json:"province"`
	PostalCode   string `json:"postal_code"`
}

// PersonalInfo es el perfil fiscal opcional, a lo sumo uno por usuario.
type PersonalInfo struct {
	ID                    int64           `json:"id"`
	UserID                int64           `json:"user_id"`
	MiddleName            string          `json:"middle_name,omitempty"`
	DateOfBirth           string          `json:"date_of_birth,omitempty"`
	SocialInsuranceNumber string          `json:"social_insurance_number,omitempty"`
	MaritalStatus         string          `json:"marital_status,omitempty"`
	ResProvince           string          `json:"res_province,omitempty"`
	MailingAddress        *MailingAddress `json:"mailing_address,omitempty"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// MaritalStatuses enumera los estados civiles aceptados.
var MaritalStatuses = []string{
	"single", "married", "common-law", "divorced", "separated", "widowed",
}

// Provinces enumera los códigos de provincia y territorio canadienses.
var Provinces = []string{
	"ON", "BC", "AB", "SK", "MB", "QC", "NB", "NS", "PE", "NL", "YT", "NT", "NU",
}

// ValidMaritalStatus indica si el valor pertenece al enum de estado civil.
func ValidMaritalStatus(s string) bool {
	for _, v := range MaritalStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// ValidProvince indica si el código pertenece al enum de provincias.
func ValidProvince(p string) bool {
	for _, v := range Provinces {
		if v == p {
			return true
		}
	}
	return false
}
