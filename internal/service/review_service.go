package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"go-gamereview-api/internal/core/cache"
	"go-gamereview-api/internal/domain"
)

const maxCommentLen = 500

// ReviewService 一人一游戏一条评价；改删仅限作者或 ADMIN；
// 每次变更后同事务重算该游戏的平均评分。
type ReviewService struct {
	reviews domain.ReviewRepository
	games   domain.GameRepository
	tx      domain.TxRunner
	cache   *cache.Cache // 可为 nil
}

func NewReviewService(reviews domain.ReviewRepository, games domain.GameRepository, tx domain.TxRunner, c *cache.Cache) *ReviewService {
	return &ReviewService{reviews: reviews, games: games, tx: tx, cache: c}
}

type CreateReviewInput struct {
	Rating   int
	Comment  string
	GameID   uint
	AuthorID uint
}

func (s *ReviewService) Create(ctx context.Context, in CreateReviewInput) (*domain.Review, error) {
	if in.AuthorID == 0 {
		return nil, domain.Validation("user not identified")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domain.Validation("rating must be between 1 and 5")
	}
	if utf8.RuneCountInString(in.Comment) > maxCommentLen {
		return nil, domain.Validation("comment must be at most 500 characters")
	}

	// 先查游戏存在，再查重复评价（顺序即契约）
	game, err := s.games.FindByID(ctx, in.GameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, domain.NotFound("game not found")
	}
	existing, err := s.reviews.FindByAuthorAndGame(ctx, in.AuthorID, in.GameID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Validation("you have already reviewed this game")
	}

	rv := &domain.Review{
		Rating:   in.Rating,
		Comment:  in.Comment,
		GameID:   in.GameID,
		AuthorID: in.AuthorID,
	}
	err = s.tx.InTx(ctx, func(reviews domain.ReviewRepository, games domain.GameRepository) error {
		if e := reviews.Create(ctx, rv); e != nil {
			return e
		}
		return games.UpdateAvgRating(ctx, in.GameID)
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, in.GameID)
	return rv, nil
}

type UpdateReviewInput struct {
	ID            uint
	Rating        *int
	Comment       *string
	RequesterID   uint
	RequesterRole domain.Role
}

func (s *ReviewService) Update(ctx context.Context, in UpdateReviewInput) (*domain.Review, error) {
	if in.Rating == nil && in.Comment == nil {
		return nil, domain.Validation("nothing to update")
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return nil, domain.Validation("rating must be between 1 and 5")
	}
	if in.Comment != nil {
		if strings.TrimSpace(*in.Comment) == "" {
			return nil, domain.Validation("comment cannot be empty")
		}
		if utf8.RuneCountInString(*in.Comment) > maxCommentLen {
			return nil, domain.Validation("comment must be at most 500 characters")
		}
	}

	rv, err := s.reviews.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if rv == nil {
		return nil, domain.NotFound("review not found")
	}
	if !canMutate(rv, in.RequesterID, in.RequesterRole) {
		return nil, domain.Forbidden("you cannot edit this review")
	}

	if in.Rating != nil {
		rv.Rating = *in.Rating
	}
	if in.Comment != nil {
		rv.Comment = *in.Comment
	}
	err = s.tx.InTx(ctx, func(reviews domain.ReviewRepository, games domain.GameRepository) error {
		if e := reviews.Update(ctx, rv); e != nil {
			return e
		}
		return games.UpdateAvgRating(ctx, rv.GameID)
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, rv.GameID)
	return rv, nil
}

func (s *ReviewService) Delete(ctx context.Context, id, requesterID uint, requesterRole domain.Role) error {
	rv, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if rv == nil {
		return domain.NotFound("review not found")
	}
	if !canMutate(rv, requesterID, requesterRole) {
		return domain.Forbidden("you cannot delete this review")
	}

	err = s.tx.InTx(ctx, func(reviews domain.ReviewRepository, games domain.GameRepository) error {
		if e := reviews.Delete(ctx, id); e != nil {
			return e
		}
		return games.UpdateAvgRating(ctx, rv.GameID)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, rv.GameID)
	return nil
}

func (s *ReviewService) ListByGame(ctx context.Context, gameID uint) ([]domain.Review, error) {
	return s.reviews.FindByGameID(ctx, gameID)
}

// 作者本人，或角色为 ADMIN；枚举穷举，新角色进来会走到 default
func canMutate(rv *domain.Review, requesterID uint, role domain.Role) bool {
	if rv.AuthorID == requesterID {
		return true
	}
	switch role {
	case domain.RoleAdmin:
		return true
	case domain.RoleUser:
		return false
	default:
		return false
	}
}

func (s *ReviewService) invalidate(ctx context.Context, gameID uint) {
	if s.cache != nil {
		s.cache.Delete(ctx, gamesListKey, gameKey(gameID))
	}
}
