// Package auth implement token issuing and the local identity lifecycle.
package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
)

// JwtIssuer is the issuer claim stamped into every access token.
const JwtIssuer = "jobSphere"

// DefaultTokenTTL matches the 30 day client session length.
const DefaultTokenTTL = 30 * 24 * time.Hour

// TokenService signs and verifies access tokens. The secret and TTL are
// explicit configuration handed in at startup instead of package state.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService with the given secret and token lifetime.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TokenServiceFromEnv builds a TokenService from the SECRET_KEY environment variable.
func TokenServiceFromEnv() *TokenService {
	return NewTokenService(os.Getenv("SECRET_KEY"), DefaultTokenTTL)
}

// Issue produces a signed access token for the given user id.
func (ts *TokenService) Issue(userID uuid.UUID) (string, error) {

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    JwtIssuer,
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ts.ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})

	signedToken, err := accessToken.SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("Failed to sign token: %s", err)
	}

	return signedToken, nil
}

// Verify parses the token, checks the signature, expiry and issuer and
// returns the user id encoded in the subject claim.
func (ts *TokenService) Verify(encodeToken string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(encodeToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("Invalid token")
		}
		return ts.secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	if !token.Valid {
		return uuid.Nil, fmt.Errorf("Invalid access token")
	}

	if claims.Issuer != JwtIssuer {
		return uuid.Nil, jwt.ErrTokenInvalidIssuer
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("Invalid subject claim: %s", err)
	}

	return userID, nil
}
