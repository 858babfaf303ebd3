package core

import (
	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

// Claims represents the authorization claims transmitted via a JWT.
// Tokens are issued by the auth service; this engine only consumes them.
type Claims struct {
	jwt.StandardClaims
	Username  string `json:"username,omitempty"`
	Name      string `json:"name,omitempty"`
	IsStudent bool   `json:"is_student,omitempty"` // -> STUDENT BOARD
	IsTeacher bool   `json:"is_teacher,omitempty"` // -> TA BOARD
}

// Role maps the claims to the board role they grant. Teacher wins when both
// flags are set.
func (c Claims) Role() Role {
	if c.IsTeacher {
		return RoleTA
	}
	return RoleStudent
}

// ParseClaims decodes the claims carried by a token without verifying its
// signature; verification is the server's job, the client only needs to know
// who it is acting as.
func ParseClaims(token string) (Claims, error) {
	var claims Claims
	if _, _, err := new(jwt.Parser).ParseUnverified(token, &claims); err != nil {
		return Claims{}, errors.Wrap(err, "parsing token claims")
	}
	return claims, nil
}
