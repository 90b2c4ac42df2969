package app

import (
	"time"

	"github.com/yungbote/ccis-backend/internal/platform/envutil"
	"github.com/yungbote/ccis-backend/internal/platform/logger"
)

type Config struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	RedisAddr       string
	RedisPassword   string
	AvatarDir       string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.Str("JWT_SECRET_KEY", "defaultsecret")
	if jwtSecretKey == "defaultsecret" {
		log.Warn("JWT_SECRET_KEY not set, using default secret")
	}
	accessTokenTTLSeconds := envutil.Int("ACCESS_TOKEN_TTL", 3600)
	refreshTokenTTLSeconds := envutil.Int("REFRESH_TOKEN_TTL", 86400)
	return Config{
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		RedisAddr:       envutil.Str("REDIS_ADDR", ""),
		RedisPassword:   envutil.Str("REDIS_PASSWORD", ""),
		AvatarDir:       envutil.Str("AVATAR_DIR", "data/avatars"),
	}
}
