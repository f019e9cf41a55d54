package token

import (
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(client *redis.Client) *redisRepository {
	return &redisRepository{client}
}

type redisRepository struct {
	client *redis.Client
}

func refreshTokenKey(userId uint, tokenId string) string {
	return fmt.Sprintf("refreshToken:%d:%s", userId, tokenId)
}

func (r redisRepository) SetRefreshToken(userId uint, tokenId string, expiresIn time.Duration) error {
	return r.client.Set(refreshTokenKey(userId, tokenId), "0", expiresIn).Err()
}

func (r redisRepository) DeleteRefreshToken(userId uint, previousTokenId string) error {
	deleted, err := r.client.Del(refreshTokenKey(userId, previousTokenId)).Result()
	if err != nil {
		return err
	}
	if deleted < 1 {
		return fmt.Errorf("no refresh token found for user %d", userId)
	}
	return nil
}

func (r redisRepository) DeleteRefreshTokens(userId uint) error {
	keys, err := r.client.Keys(refreshTokenKey(userId, "*")).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(keys...).Err()
}
