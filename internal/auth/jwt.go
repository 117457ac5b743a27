package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func getJWTSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}
	return []byte(secret), nil
}

func GenerateToken(employeeID int, email, role string) (string, error) {
	if employeeID <= 0 {
		return "", errors.New("invalid employeeID passed to GenerateToken")
	}

	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"employeeID": employeeID,
		"email":      email,
		"role":       role,
		"exp":        time.Now().Add(12 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateToken(tokenString string) (int, string, string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return 0, "", "", err
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", "", errors.New("invalid token claims")
	}

	// numeric claims decode as float64
	idClaim, _ := claims["employeeID"].(float64)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	employeeID := int(idClaim)
	if employeeID <= 0 {
		return 0, "", "", errors.New("invalid employee id claim")
	}

	return employeeID, email, role, nil
}
