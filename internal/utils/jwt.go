package utils

import (
	"errors" // Error kinds and errors.Is
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// Distinct token failure kinds callers can test with errors.Is
var (
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrInvalidToken     = errors.New("invalid token")
)

// GenerateToken creates a signed access token carrying the subject claim.
// The token expires ttl from now; the signing method is resolved from the
// configured algorithm identifier (HS256 unless overridden).
func GenerateToken(subject string, ttl time.Duration, secret, algorithm string) (string, error) {
	method := jwt.GetSigningMethod(algorithm) // Resolve the signing method
	if method == nil {
		return "", errors.New("unknown signing algorithm: " + algorithm)
	}
	// Standard sub/exp/iat claims, nothing else
	claims := jwt.RegisteredClaims{
		Subject:   subject,                                  // Claim: sub
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),  // Claim: exp
		IssuedAt:  jwt.NewNumericDate(time.Now()),           // Claim: iat
	}
	token := jwt.NewWithClaims(method, claims) // Create token with claims
	return token.SignedString([]byte(secret))  // Sign the token with the secret
}

// ParseToken validates a token string and returns its subject claim.
// Fails with ErrExpiredToken or ErrInvalidSignature as distinct kinds.
func ParseToken(tokenStr, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		// Only symmetric HMAC signing is ever used here
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil // Return the secret key for validation
	})
	// Map library errors onto the two failure kinds
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
			return "", ErrInvalidSignature
		default:
			return "", ErrInvalidToken
		}
	}
	// Validate token and extract the subject
	if claims, ok := token.Claims.(*jwt.RegisteredClaims); ok && token.Valid {
		return claims.Subject, nil
	}
	return "", ErrInvalidToken
}
