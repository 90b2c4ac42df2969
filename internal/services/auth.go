package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/ccis-backend/internal/domain/learner"
	pkgerrors "github.com/yungbote/ccis-backend/internal/pkg/errors"
	"github.com/yungbote/ccis-backend/internal/platform/logger"
	"github.com/yungbote/ccis-backend/internal/repos"
	"github.com/yungbote/ccis-backend/internal/requestdata"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, l *learner.Learner) error
	Login(ctx context.Context, email, password string) (string, string, error)
	Refresh(ctx context.Context) (string, string, error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	AccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	learnerRepo   repos.LearnerRepo
	tokenRepo     repos.LearnerTokenRepo
	avatarService AvatarService
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	learnerRepo repos.LearnerRepo,
	tokenRepo repos.LearnerTokenRepo,
	avatarService AvatarService,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		learnerRepo:   learnerRepo,
		tokenRepo:     tokenRepo,
		avatarService: avatarService,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) Register(ctx context.Context, l *learner.Learner) error {
	l.Email = strings.ToLower(strings.TrimSpace(l.Email))
	l.FirstName = strings.TrimSpace(l.FirstName)
	l.LastName = strings.TrimSpace(l.LastName)
	if l.Email == "" || l.Password == "" || l.FirstName == "" || l.LastName == "" {
		return fmt.Errorf("%w: email, password and name are required", pkgerrors.ErrInvalidArgument)
	}
	if l.Region == "" {
		l.Region = "GLOBAL"
	}
	if l.Language == "" {
		l.Language = "en"
	}

	exists, err := as.learnerRepo.EmailExists(ctx, nil, l.Email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: email already registered", pkgerrors.ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(l.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	l.Password = string(hashed)

	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l.ID = uuid.New()
		if err := as.avatarService.CreateLearnerAvatar(ctx, tx, l); err != nil {
			return fmt.Errorf("create learner avatar: %w", err)
		}
		if _, err := as.learnerRepo.Create(ctx, tx, []*learner.Learner{l}); err != nil {
			return fmt.Errorf("create learner: %w", err)
		}
		return nil
	})
}

func (as *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", "", fmt.Errorf("%w: email and password are required", pkgerrors.ErrInvalidArgument)
	}

	l, err := as.learnerRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid credentials", pkgerrors.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(l.Password), []byte(password)); err != nil {
		return "", "", fmt.Errorf("%w: invalid credentials", pkgerrors.ErrUnauthorized)
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.tokenRepo.GetByLearnerIDs(ctx, tx, []uuid.UUID{l.ID})
		if err != nil {
			return fmt.Errorf("check learner tokens: %w", err)
		}
		var expiredIDs []uuid.UUID
		for _, tok := range existing {
			if tok.ExpiresAt.Before(time.Now()) {
				expiredIDs = append(expiredIDs, tok.ID)
			}
		}
		if len(expiredIDs) > 0 {
			if err := as.tokenRepo.SoftDeleteByIDs(ctx, tx, expiredIDs); err != nil {
				return fmt.Errorf("delete expired tokens: %w", err)
			}
		}

		tok, err := as.generateAccessToken(l)
		if err != nil {
			return fmt.Errorf("generate access token: %w", err)
		}
		accessToken = tok
		refreshToken = uuid.New().String()

		token := &learner.LearnerToken{
			ID:           uuid.New(),
			LearnerID:    l.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.tokenRepo.Create(ctx, tx, []*learner.LearnerToken{token}); err != nil {
			return fmt.Errorf("create learner token: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) Refresh(ctx context.Context) (string, string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return "", "", fmt.Errorf("%w: refresh token missing", pkgerrors.ErrUnauthorized)
	}

	var accessToken, newRefreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := as.tokenRepo.GetByRefreshTokens(ctx, tx, []string{rd.RefreshToken})
		if err != nil {
			return fmt.Errorf("fetch refresh token: %w", err)
		}
		if len(found) == 0 {
			return fmt.Errorf("%w: unknown refresh token", pkgerrors.ErrUnauthorized)
		}
		existing := found[0]
		if existing.ExpiresAt.Before(time.Now()) {
			if err := as.tokenRepo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); err != nil {
				return fmt.Errorf("delete expired token: %w", err)
			}
			return fmt.Errorf("%w: refresh token expired", pkgerrors.ErrUnauthorized)
		}

		ls, err := as.learnerRepo.GetByIDs(ctx, tx, []uuid.UUID{existing.LearnerID})
		if err != nil || len(ls) == 0 {
			return fmt.Errorf("%w: learner for refresh token", pkgerrors.ErrNotFound)
		}

		tok, err := as.generateAccessToken(ls[0])
		if err != nil {
			return fmt.Errorf("generate access token: %w", err)
		}
		accessToken = tok
		newRefreshToken = uuid.New().String()

		token := &learner.LearnerToken{
			ID:           uuid.New(),
			LearnerID:    existing.LearnerID,
			AccessToken:  accessToken,
			RefreshToken: newRefreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.tokenRepo.Create(ctx, tx, []*learner.LearnerToken{token}); err != nil {
			return fmt.Errorf("create learner token: %w", err)
		}
		return as.tokenRepo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{existing.ID})
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return fmt.Errorf("%w: access token missing", pkgerrors.ErrUnauthorized)
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := as.tokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
		if err != nil {
			return fmt.Errorf("fetch learner token: %w", err)
		}
		if len(found) == 0 {
			return nil
		}
		return as.tokenRepo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{found[0].ID})
	})
}

func (as *authService) generateAccessToken(l *learner.Learner) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   l.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("%w: parse token: %v", pkgerrors.ErrUnauthorized, err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, fmt.Errorf("%w: invalid or expired token", pkgerrors.ErrUnauthorized)
	}
	learnerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("%w: invalid subject in token", pkgerrors.ErrUnauthorized)
	}

	var refreshToken string
	if found, err := as.tokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString}); err == nil && len(found) > 0 {
		refreshToken = found[0].RefreshToken
	}

	rd := &requestdata.RequestData{
		TokenString:  tokenString,
		RefreshToken: refreshToken,
		LearnerID:    learnerID,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) AccessTTL() time.Duration {
	return as.accessTTL
}
