package repo

import (
	"context"

	"gorm.io/gorm"

	"go-gamereview-api/internal/domain"
)

// TxRunner 在一个 gorm 事务里同时暴露评价仓储与游戏仓储，
// 评分变更和聚合重算一起提交或一起回滚。
type TxRunner struct{ db *gorm.DB }

func NewTxRunner(db *gorm.DB) *TxRunner { return &TxRunner{db: db} }

func (t *TxRunner) InTx(ctx context.Context, fn func(reviews domain.ReviewRepository, games domain.GameRepository) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewReviewRepo(tx), NewGameRepo(tx))
	})
}
