package domain

import (
	"context"
	"time"
)

type Game struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"uniqueIndex;size:191;not null" json:"title"`
	Genre string `gorm:"size:64;not null" json:"genre"`
	// AvgRating 派生字段，只由评分聚合重算，客户端不可直接写
	AvgRating float64   `gorm:"not null;default:0" json:"avgRating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type GameRepository interface {
	Create(ctx context.Context, g *Game) error
	Update(ctx context.Context, g *Game) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Game, error)
	FindByTitle(ctx context.Context, title string) (*Game, error)
	FindAll(ctx context.Context) ([]Game, error)
	// UpdateAvgRating 重算并落库该游戏的平均评分（无评分时写 0）
	UpdateAvgRating(ctx context.Context, gameID uint) error
}
