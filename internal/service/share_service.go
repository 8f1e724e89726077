package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Shareable document kinds. Only builder documents can be shared.
const (
	ShareKindBoard    = "board"
	ShareKindSchedule = "schedule"
)

var (
	ErrShareKindInvalid  = errors.New("invalid share kind")
	ErrShareTokenInvalid = errors.New("invalid share token")
	ErrShareTokenExpired = errors.New("share token expired")
)

// ShareClaims are the JWT claims embedded in a share link. The token
// carries everything needed to resolve the shared document, so links
// stay valid without any server-side state.
type ShareClaims struct {
	Kind       string `json:"kind"`
	DocumentID string `json:"doc_id"`
	OwnerID    string `json:"owner_id"`
	jwt.RegisteredClaims
}

// ShareService mints and verifies signed share links for boards and
// schedules.
type ShareService struct {
	secret  []byte
	ttl     time.Duration
	baseURL string
}

func NewShareService(secret string, ttl time.Duration, baseURL string) *ShareService {
	return &ShareService{
		secret:  []byte(secret),
		ttl:     ttl,
		baseURL: baseURL,
	}
}

// CreateToken mints a signed share token for the given document.
func (s *ShareService) CreateToken(kind, documentID, ownerID string) (string, error) {
	if kind != ShareKindBoard && kind != ShareKindSchedule {
		return "", ErrShareKindInvalid
	}
	if documentID == "" || ownerID == "" {
		return "", ErrShareTokenInvalid
	}

	now := time.Now()
	claims := ShareClaims{
		Kind:       kind,
		DocumentID: documentID,
		OwnerID:    ownerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "chitraboard",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign share token: %w", err)
	}
	return signed, nil
}

// ShareURL builds the public link for a share token.
func (s *ShareService) ShareURL(token string) string {
	return fmt.Sprintf("%s/shared/%s", s.baseURL, token)
}

// VerifyToken parses and validates a share token, returning its claims.
func (s *ShareService) VerifyToken(tokenString string) (*ShareClaims, error) {
	claims := &ShareClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrShareTokenExpired
		}
		return nil, ErrShareTokenInvalid
	}
	if !token.Valid {
		return nil, ErrShareTokenInvalid
	}
	if claims.Kind != ShareKindBoard && claims.Kind != ShareKindSchedule {
		return nil, ErrShareTokenInvalid
	}
	return claims, nil
}
