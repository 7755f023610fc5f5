package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlibekovAA/stride/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/stride/internal/common/crypto"
	"github.com/AlibekovAA/stride/internal/common/jwtverify"
	userdomain "github.com/AlibekovAA/stride/internal/user/domain"
)

type TokenIssuer struct {
	jwtSecret      []byte
	idGenerator    commoncrypto.IDGenerator
	clock          clock.Clock
	accessTokenTTL time.Duration
}

func NewTokenIssuer(
	jwtSecret string,
	idGenerator commoncrypto.IDGenerator,
	accessTokenTTL time.Duration,
	clock clock.Clock,
) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret:      []byte(jwtSecret),
		idGenerator:    idGenerator,
		clock:          clock,
		accessTokenTTL: accessTokenTTL,
	}
}

// IssueAccessToken signs an HS256 token for user and returns it with its
// expiry.
func (ti *TokenIssuer) IssueAccessToken(user userdomain.User) (string, time.Time, error) {
	jti, err := ti.idGenerator.NewID()
	if err != nil {
		return "", time.Time{}, err
	}

	now := ti.clock.Now()
	expiresAt := now.Add(ti.accessTokenTTL)
	claims := jwt.MapClaims{
		"sub": string(user.ID),
		"usr": user.Name,
		"jti": jti,
		"exp": expiresAt.Unix(),
		"iat": now.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}

	incrementAccessTokensIssued()
	return signed, expiresAt, nil
}

func (ti *TokenIssuer) ParseToken(tokenString string) (jwtverify.Claims, error) {
	return jwtverify.ParseToken(tokenString, ti.jwtSecret)
}
