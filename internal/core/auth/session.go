package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims 会话 cookie 的载荷。只放 uid：
// 角色永远从 profiles 表读取，避免多处解释角色产生漂移。
type Claims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// SessionTokens 签发/校验会话令牌（HS256）
type SessionTokens struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (s *SessionTokens) Issue(uid string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.TTL)
	claims := Claims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.Secret)
	return signed, exp, err
}

func (s *SessionTokens) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return s.Secret, nil
	}, jwt.WithIssuer(s.Issuer), jwt.WithLeeway(60*time.Second))

	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}
