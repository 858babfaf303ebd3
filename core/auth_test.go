package core

import (
	"testing"

	"github.com/dgrijalva/jwt-go"
)

func signedToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestParseClaims(t *testing.T) {
	token := signedToken(t, &Claims{Username: "alice", Name: "Alice M", IsStudent: true})

	claims, err := ParseClaims(token)
	if err != nil {
		t.Fatalf("ParseClaims() = %v; want nil", err)
	}
	if claims.Username != "alice" {
		t.Errorf("username = %q; want %q", claims.Username, "alice")
	}
	if claims.Name != "Alice M" {
		t.Errorf("name = %q; want %q", claims.Name, "Alice M")
	}
}

func TestParseClaimsGarbage(t *testing.T) {
	if _, err := ParseClaims("not.a.token"); err == nil {
		t.Error("ParseClaims() = nil; want error")
	}
}

func TestClaimsRole(t *testing.T) {
	tests := []struct {
		name   string
		claims Claims
		want   Role
	}{
		{name: "student", claims: Claims{IsStudent: true}, want: RoleStudent},
		{name: "teacher", claims: Claims{IsTeacher: true}, want: RoleTA},
		{name: "teacher wins", claims: Claims{IsStudent: true, IsTeacher: true}, want: RoleTA},
		{name: "neither defaults to student", claims: Claims{}, want: RoleStudent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.claims.Role(); got != tt.want {
				t.Errorf("Role() = %v; want %v", got, tt.want)
			}
		})
	}
}
