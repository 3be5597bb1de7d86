package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
)

// Manager 访客Token管理器
// 设计说明:
// 1. 访客Token只标识"哪个工作区",不携带任何权限
// 2. 管理员权限由后端签发的session_token决定,与这里的JWT无关
// 3. 使用HS256对称签名,密钥来自配置
type Manager struct {
	secret string
	ttl    time.Duration
	issuer string
}

// NewManager 创建访客Token管理器
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: secret,
		ttl:    ttl,
		issuer: "bookstore-storefront",
	}
}

// Claims 访客Token载荷
type Claims struct {
	VisitorID string `json:"visitor_id"`
	jwt.RegisteredClaims
}

// Issue 为访客签发Token
func (m *Manager) Issue(visitorID string) (string, error) {
	now := time.Now()
	claims := Claims{
		VisitorID: visitorID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   visitorID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", apperrors.Wrap(err, "签发访客Token失败")
	}
	return signed, nil
}

// Parse 解析并校验访客Token
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非法的签名算法: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	}, jwt.WithIssuer(m.issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.VisitorID == "" {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
