package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/sandwichpos/pos-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a terminal token.
type AccessTokenPayload struct {
	CashierID  string
	TerminalID string
	Role       enums.StaffRole
	JTI        string
}

// AccessTokenClaims represents the typed JWT presented by POS terminals.
type AccessTokenClaims struct {
	CashierID  string          `json:"cashier_id"`
	TerminalID string          `json:"terminal_id"`
	Role       enums.StaffRole `json:"role"`
	jwt.RegisteredClaims
}
