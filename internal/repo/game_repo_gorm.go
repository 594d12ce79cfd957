package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-gamereview-api/internal/domain"
)

type GameRepo struct{ db *gorm.DB }

func NewGameRepo(db *gorm.DB) *GameRepo { return &GameRepo{db: db} }

func (r *GameRepo) Create(ctx context.Context, g *domain.Game) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GameRepo) Update(ctx context.Context, g *domain.Game) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *GameRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Game{}, "id = ?", id).Error
}

func (r *GameRepo) FindByID(ctx context.Context, id uint) (*domain.Game, error) {
	var g domain.Game
	err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GameRepo) FindByTitle(ctx context.Context, title string) (*domain.Game, error) {
	var g domain.Game
	err := r.db.WithContext(ctx).First(&g, "title = ?", title).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GameRepo) FindAll(ctx context.Context) ([]domain.Game, error) {
	var games []domain.Game
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&games).Error
	return games, err
}

// UpdateAvgRating 无评分时写 0，派生字段永不为 NULL
func (r *GameRepo) UpdateAvgRating(ctx context.Context, gameID uint) error {
	return r.db.WithContext(ctx).Model(&domain.Game{}).
		Where("id = ?", gameID).
		Update("avg_rating", r.db.Model(&domain.Review{}).
			Select("COALESCE(AVG(rating), 0)").
			Where("game_id = ?", gameID),
		).Error
}
