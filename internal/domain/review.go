package domain

import (
	"context"
	"time"
)

type Review struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Rating  int    `gorm:"not null" json:"rating"` // 1-5
	Comment string `gorm:"size:500;not null" json:"comment"`
	// (author_id, game_id) 唯一索引：并发重复提交由存储层兜底
	GameID    uint      `gorm:"not null;uniqueIndex:idx_reviews_author_game,priority:2" json:"gameId"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_reviews_author_game,priority:1" json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ReviewRepository interface {
	Create(ctx context.Context, r *Review) error
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Review, error)
	FindByGameID(ctx context.Context, gameID uint) ([]Review, error)
	FindByAuthorAndGame(ctx context.Context, authorID, gameID uint) (*Review, error)
}
