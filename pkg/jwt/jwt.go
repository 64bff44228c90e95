package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims claims del access token emitido por el backend (estilo SimpleJWT).
// UserID puede llegar como número o string.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type,omitempty"`
	UserID    any    `json:"user_id,omitempty"`
}

// User devuelve el user_id como string ("" si no viene).
func (c *Claims) User() string {
	switch v := c.UserID.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprint(v)
	}
}

// Generate genera un token HS256. El cliente no emite tokens; se usa en tests y entornos locales.
func Generate(secret, userID, tokenType string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: tokenType,
		UserID:    userID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Decode lee los claims SIN verificar la firma: el cliente no conoce la clave del backend.
// Sirve solo para mostrar la expiración; la autorización real la decide el backend.
func Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("jwt: token mal formado: %w", err)
	}
	return claims, nil
}

// ExpiresAt devuelve la expiración del token (nil si no trae exp).
func ExpiresAt(tokenString string) (*time.Time, error) {
	claims, err := Decode(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.ExpiresAt == nil {
		return nil, nil
	}
	t := claims.ExpiresAt.Time
	return &t, nil
}
