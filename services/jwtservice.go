package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"exale/model"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "exale"

// CreateAccessToken signs an HS256 token for jwt auth mode.
func CreateAccessToken(secret, userID, email, name string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("missing signing secret")
	}
	claims := &model.AccessClaims{
		UserID: userID,
		Email:  email,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// JWTVerifier accepts tokens issued by CreateAccessToken.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(ctx context.Context, tokenString string) (Identity, error) {
	claims := &model.AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid || strings.TrimSpace(claims.UserID) == "" {
		return Identity{}, fmt.Errorf("invalid token claims")
	}
	return Identity{UID: claims.UserID, Email: claims.Email, Name: claims.Name}, nil
}
