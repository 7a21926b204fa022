package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/drivedesk-gateway/internal/models"
	appErrors "github.com/noah-isme/drivedesk-gateway/pkg/errors"
)

// TokenService resolves the principal a bearer token acts for. Tokens are
// issued by the driving-school backend; the gateway only reads them.
type TokenService struct {
	secret []byte
	parser *jwt.Parser
	logger *zap.Logger
}

// NewTokenService builds a TokenService. With an empty secret, signatures are
// not checked and the backend stays the only authority; each distinct token
// then owns its own snapshot.
func NewTokenService(secret string, logger *zap.Logger) *TokenService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenService{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
		logger: logger,
	}
}

// Verifies reports whether signatures are checked.
func (s *TokenService) Verifies() bool {
	return len(s.secret) > 0
}

// Principal resolves token into the principal that keys its snapshot.
func (s *TokenService) Principal(token string) (models.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Principal{}, appErrors.Clone(appErrors.ErrUnauthorized, "missing bearer token")
	}

	claims := &models.JWTClaims{}
	if !s.Verifies() {
		// Unverified claims cannot pick the snapshot key: the token itself does.
		if _, _, err := s.parser.ParseUnverified(token, claims); err != nil {
			s.logger.Debug("bearer token is not a JWT", zap.Error(err))
		}
		return models.Principal{UserID: hashToken(token), Role: claims.Role, Email: claims.Email, Token: token}, nil
	}

	parsed, err := s.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return models.Principal{}, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		userID = hashToken(token)
	}
	return models.Principal{UserID: userID, Role: claims.Role, Email: claims.Email, Token: token}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "tok_" + hex.EncodeToString(sum[:16])
}
