package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/partydeck/monikers-server/internal/config"
)

var (
	ErrInvalidName = errors.New("display name is required")
)

// AuthService mints and validates anonymous guest sessions. There are no
// accounts: a session is a stable playerId plus a signed token the client
// keeps across reconnects.
type AuthService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

type GuestSession struct {
	PlayerID string
	Name     string
	Token    string
}

// CreateGuestSession issues a fresh playerId and its token. When the client
// presents a previously issued playerId it is kept, so the same identity can
// be re-signed after token expiry.
func (s *AuthService) CreateGuestSession(name, playerID string) (*GuestSession, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if playerID == "" {
		playerID = uuid.New().String()
	}

	claims := jwt.MapClaims{
		"sub":  playerID,
		"name": name,
		"exp":  time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &GuestSession{
		PlayerID: playerID,
		Name:     name,
		Token:    signed,
	}, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return &claims, nil
	}

	return nil, errors.New("invalid token")
}

// PlayerIDFromToken extracts the stable player identity from a session token.
func (s *AuthService) PlayerIDFromToken(tokenString string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	playerID, ok := (*claims)["sub"].(string)
	if !ok || playerID == "" {
		return "", errors.New("invalid token claims")
	}
	return playerID, nil
}
