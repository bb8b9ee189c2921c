// Package auth validates tokens minted by the external identity provider.
// This service never issues tokens; it only verifies them and reads the
// subject id that User.Auth0ID maps to.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the identity claims this service reads from a verified token
type Claims struct {
	Subject string
	Email   string
	Role    string
}

// TokenVerifier validates identity-provider JWTs
type TokenVerifier struct {
	secret string
}

// NewTokenVerifier creates a new token verifier
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: secret}
}

// Verify validates a token and extracts its identity claims
func (v *TokenVerifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(v.secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("sub not found in token")
	}

	claims := &Claims{Subject: sub}

	// Email and role are optional; the role claim only gates admin routes
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}

	return claims, nil
}
