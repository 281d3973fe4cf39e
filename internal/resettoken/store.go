package resettoken

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	keyPrefix = "pwreset:"
	tokenTTL  = 30 * time.Minute
)

var ErrInvalidToken = errors.New("invalid or expired reset token")

// Store guarda tokens de redefinição de senha no redis com TTL;
// o token expira sozinho, sem job de limpeza.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Issue cria um token opaco apontando para o usuário.
func (s *Store) Issue(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()

	err := s.rdb.Set(
		ctx,
		keyPrefix+token,
		fmt.Sprintf("%d", userID),
		tokenTTL,
	).Err()
	if err != nil {
		return "", err
	}

	return token, nil
}

// Consume valida e invalida o token em uma única passada.
func (s *Store) Consume(ctx context.Context, token string) (uint, error) {
	key := keyPrefix + token

	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrInvalidToken
	}
	if err != nil {
		return 0, err
	}

	var userID uint
	if _, err := fmt.Sscanf(val, "%d", &userID); err != nil {
		return 0, ErrInvalidToken
	}

	// token é de uso único
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return 0, err
	}

	return userID, nil
}
