package domain

import (
	"context"
	"time"
)

// RefreshToken 服务端持久化的长效令牌，按 token 串查删。
// 签名里的 exp 与这里的 ExpiresAt 两边都要查；惰性过期由刷新失败路径顺手删除。
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"size:512;index;not null" json:"token"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, t *RefreshToken) error
	FindByToken(ctx context.Context, token string) (*RefreshToken, error)
	// DeleteByToken 幂等，删除所有匹配记录
	DeleteByToken(ctx context.Context, token string) error
}
