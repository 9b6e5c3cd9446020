package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is the iss claim written into every token.
const Issuer = "coride-api"

// ErrInvalidToken covers every verification failure: bad signature, bad
// format, expiry, wrong signing method or a missing subject.
var ErrInvalidToken = errors.New("invalid token")

// Service signs and verifies the bearer tokens the API hands out at login.
// Tokens are HMAC-signed and carry the user's ID as the subject claim; they
// live only for the request on the verification side, nothing is persisted.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service with the given HMAC secret and lifetime.
func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl}
}

// Issue signs a token whose subject is the given user ID.
func (s *Service) Issue(userID int) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the subject user ID.
func (s *Service) Verify(tokenString string) (int, error) {
	tok, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(Issuer),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	subject, err := tok.Claims.GetSubject()
	if err != nil || subject == "" {
		return 0, fmt.Errorf("%w: missing subject claim", ErrInvalidToken)
	}

	userID, err := strconv.Atoi(subject)
	if err != nil {
		return 0, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}
	return userID, nil
}
