package server

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/mindwell/internal/config"
	"github.com/jonathan/mindwell/internal/server/middleware"
)

// Claims are the identity-provider claims the API reads. The user id is the
// standard subject claim.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// GetUserID returns the subject. It implements middleware.Principal.
func (c *Claims) GetUserID() string {
	return c.Subject
}

// GetEmail returns the email claim. It implements middleware.Principal.
func (c *Claims) GetEmail() string {
	return c.Email
}

// AsTokenValidator returns a TokenValidator adapter for this JWTService.
// This allows the JWTService to be used with middleware without creating import cycles.
func (s *JWTService) AsTokenValidator() middleware.TokenValidator {
	return &jwtServiceValidator{service: s}
}

// jwtServiceValidator adapts JWTService to middleware.TokenValidator interface.
type jwtServiceValidator struct {
	service *JWTService
}

func (v *jwtServiceValidator) ValidateToken(tokenString string) (middleware.Principal, error) {
	claims, err := v.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// JWTService verifies identity-provider tokens. With a public key configured
// it accepts RS256 tokens; otherwise HS256 tokens signed with the shared secret.
type JWTService struct {
	config    *config.AuthConfig
	publicKey *rsa.PublicKey
}

// NewJWTService creates a JWT service, parsing the RSA public key if one is set.
func NewJWTService(cfg *config.AuthConfig) (*JWTService, error) {
	s := &JWTService{config: cfg}
	if cfg.PublicKeyPEM != "" {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_PUBLIC_KEY: %w", err)
		}
		s.publicKey = key
	}
	return s, nil
}

// GenerateToken mints an HS256 token for local development. Production tokens
// come from the identity provider.
func (s *JWTService) GenerateToken(userID, email string) (string, error) {
	if s.config.Secret == "" {
		return "", fmt.Errorf("JWT_SECRET is required to mint tokens")
	}
	if userID == "" {
		return "", fmt.Errorf("user ID is required")
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(s.config.ExpirationHours) * time.Hour)

	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.config.Issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}
	if s.publicKey != nil {
		opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	} else {
		opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("invalid token signature: %w", err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("token expired: %w", err)
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("malformed token: %w", err)
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return claims, nil
}

func (s *JWTService) keyFunc(token *jwt.Token) (interface{}, error) {
	if s.publicKey != nil {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.publicKey, nil
	}
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return []byte(s.config.Secret), nil
}
