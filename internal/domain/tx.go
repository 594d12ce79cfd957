package domain

import "context"

// TxRunner 评分变更与聚合重算必须同一事务提交
type TxRunner interface {
	InTx(ctx context.Context, fn func(reviews ReviewRepository, games GameRepository) error) error
}
