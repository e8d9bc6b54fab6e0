package auth

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/techtify/ensured-billing/internal/model"
)

var ErrInvalidToken = errors.New("invalid token")

// Parser validates access tokens and extracts the calling principal.
type Parser struct {
	secret []byte
}

func NewParser(accessSecret string) *Parser {
	return &Parser{secret: []byte(accessSecret)}
}

type accessClaims struct {
	Name     string         `json:"name"`
	UserType model.UserType `json:"userType"`
	jwt.RegisteredClaims
}

// Parse verifies the signature and expiry of an access token and returns
// the principal it describes.
func (p *Parser) Parse(tokenString string) (model.Principal, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return model.Principal{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return model.Principal{}, ErrInvalidToken
	}

	return model.Principal{
		UserID: userID,
		Name:   claims.Name,
		Type:   claims.UserType,
	}, nil
}
