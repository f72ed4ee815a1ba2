package security

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

const (
	TOKEN_KEY = "Authorization"
)

type TokenClaims struct {
	User       string `json:"u"`   // owning user id
	UserName   string `json:"un"`  // display name at issue time
	ExpireTime int64  `json:"exp"` // expiry, unix seconds
	NotBefore  int64  `json:"nbf"` // valid-from, unix seconds
}

func NewTokenClaims(userID, userName string, expireTime int64) TokenClaims {
	return TokenClaims{
		User:       userID,
		UserName:   userName,
		ExpireTime: expireTime,
		NotBefore:  time.Now().Unix() - 1,
	}
}

func (t TokenClaims) Valid() error {
	now := time.Now().Unix()
	if t.ExpireTime != 0 && now > t.ExpireTime {
		return fmt.Errorf("token expired")
	}
	if now < t.NotBefore {
		return fmt.Errorf("token not active yet")
	}
	if t.User == "" {
		return fmt.Errorf("token missing user")
	}
	return nil
}

func GenJWTToken(claims TokenClaims, tokenSecret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(tokenSecret))
}

func ParseJWTToken(tokenString, tokenSecret string) (TokenClaims, error) {
	var claims TokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tokenSecret), nil
	})
	if err != nil {
		return claims, err
	}
	if !token.Valid {
		return claims, fmt.Errorf("invalid token")
	}
	return claims, nil
}
