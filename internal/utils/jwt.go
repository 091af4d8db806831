package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-zk-vault/models"
)

var (
	// ErrInvalidTokenParams is returned when a token cannot be issued because
	// the issuer, duration or key is missing.
	ErrInvalidTokenParams = errors.New("invalid params for generating session token")

	// ErrInvalidAuthorizationHeader is returned for anything but "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")
)

const bearerScheme = "Bearer"

// GenerateJWTToken signs an HS256 session token for accountID.
//
// Claims: iss = issuer, sub = account id (base 10), iat = now,
// exp = now + tokenDuration.
func GenerateJWTToken(issuer string, accountID int64, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, ErrInvalidTokenParams
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(accountID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error signing session token: %w", err)
	}

	return models.Token{Token: token, RegisteredClaims: claims, SignedString: signed, AccountID: accountID}, nil
}

// ValidateAndParseJWTToken checks signature, algorithm, issuer and expiry of
// tokenString and returns the token with AccountID taken from "sub".
func ValidateAndParseJWTToken(tokenString, signKey, issuer string) (models.Token, error) {
	var parsed models.Token

	token, err := jwt.ParseWithClaims(tokenString, &parsed.RegisteredClaims, func(*jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error validating session token: %w", err)
	}
	parsed.Token = token
	parsed.SignedString = tokenString

	if parsed.AccountID, err = parsed.GetAccountID(); err != nil {
		return models.Token{}, err
	}

	return parsed, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) {
		return "", ErrInvalidAuthorizationHeader
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidAuthorizationHeader
	}
	return token, nil
}

// BearerHeader formats token as an Authorization header value.
func BearerHeader(token string) string {
	return bearerScheme + " " + token
}
