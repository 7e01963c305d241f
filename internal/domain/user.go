package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims são as informações do operador presentes no token da API administrativa
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

const RoleAdmin = "admin"
