package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTService implementa a interface TokenService para tokens de sessão.
type JWTService struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
}

// NewJWTService cria uma nova instância de JWTService.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{
		secretKey: []byte(secret),
		issuer:    "microquiz-api",
		ttl:       ttl,
	}
}

// GenerateToken gera um token JWT vinculado à sessão.
func (s *JWTService) GenerateToken(sessionID string) (string, int64, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub": sessionID,
		"iss": s.issuer,
		"exp": now.Add(s.ttl).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", 0, err
	}

	return signedToken, int64(s.ttl / time.Second), nil // Retorna segundos
}

// ValidateToken valida o token JWT e retorna o ID da sessão.
func (s *JWTService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Valida o método de assinatura
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de assinatura inválido")
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())

	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		sessionID, err := claims.GetSubject()
		if err != nil || sessionID == "" {
			return "", errors.New("token sem ID de sessão (sub)")
		}
		return sessionID, nil
	}

	return "", errors.New("token inválido")
}
