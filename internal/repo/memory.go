package repo

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go-gamereview-api/internal/domain"
)

// MemoryStore 内存实现，语义对齐 gorm 仓储（找不到返回 nil,nil、
// 重复评价返回同样的校验错误），测试与无数据库的本地运行用。
type MemoryStore struct {
	mu      sync.Mutex
	users   map[uint]domain.User
	games   map[uint]domain.Game
	reviews map[uint]domain.Review
	tokens  map[uint]domain.RefreshToken

	userSeq, gameSeq, reviewSeq, tokenSeq uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   map[uint]domain.User{},
		games:   map[uint]domain.Game{},
		reviews: map[uint]domain.Review{},
		tokens:  map[uint]domain.RefreshToken{},
	}
}

func (s *MemoryStore) Users() domain.UserRepository                 { return memUsers{s} }
func (s *MemoryStore) Games() domain.GameRepository                 { return memGames{s} }
func (s *MemoryStore) Reviews() domain.ReviewRepository             { return memReviews{s} }
func (s *MemoryStore) RefreshTokens() domain.RefreshTokenRepository { return memTokens{s} }

// InTx 内存实现不支持回滚，直接顺序执行
func (s *MemoryStore) InTx(ctx context.Context, fn func(reviews domain.ReviewRepository, games domain.GameRepository) error) error {
	return fn(memReviews{s}, memGames{s})
}

var errDupKey = errors.New("duplicate key")

// --- users ---

type memUsers struct{ s *MemoryStore }

func (m memUsers) Create(ctx context.Context, u *domain.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, v := range m.s.users {
		if v.Email == u.Email {
			return errDupKey
		}
	}
	m.s.userSeq++
	u.ID = m.s.userSeq
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.s.users[u.ID] = *u
	return nil
}

func (m memUsers) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if u, ok := m.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (m memUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// --- games ---

type memGames struct{ s *MemoryStore }

func (m memGames) Create(ctx context.Context, g *domain.Game) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, v := range m.s.games {
		if v.Title == g.Title {
			return errDupKey
		}
	}
	m.s.gameSeq++
	g.ID = m.s.gameSeq
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	m.s.games[g.ID] = *g
	return nil
}

func (m memGames) Update(ctx context.Context, g *domain.Game) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	g.UpdatedAt = time.Now()
	m.s.games[g.ID] = *g
	return nil
}

func (m memGames) Delete(ctx context.Context, id uint) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.games, id)
	return nil
}

func (m memGames) FindByID(ctx context.Context, id uint) (*domain.Game, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if g, ok := m.s.games[id]; ok {
		return &g, nil
	}
	return nil, nil
}

func (m memGames) FindByTitle(ctx context.Context, title string) (*domain.Game, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, g := range m.s.games {
		if g.Title == title {
			g := g
			return &g, nil
		}
	}
	return nil, nil
}

func (m memGames) FindAll(ctx context.Context) ([]domain.Game, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]domain.Game, 0, len(m.s.games))
	for _, g := range m.s.games {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m memGames) UpdateAvgRating(ctx context.Context, gameID uint) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	g, ok := m.s.games[gameID]
	if !ok {
		return nil
	}
	var sum, n int
	for _, r := range m.s.reviews {
		if r.GameID == gameID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		g.AvgRating = 0
	} else {
		g.AvgRating = float64(sum) / float64(n)
	}
	m.s.games[gameID] = g
	return nil
}

// --- reviews ---

type memReviews struct{ s *MemoryStore }

func (m memReviews) Create(ctx context.Context, rv *domain.Review) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, v := range m.s.reviews {
		if v.AuthorID == rv.AuthorID && v.GameID == rv.GameID {
			return domain.Validation("you have already reviewed this game")
		}
	}
	m.s.reviewSeq++
	rv.ID = m.s.reviewSeq
	rv.CreatedAt = time.Now()
	rv.UpdatedAt = rv.CreatedAt
	m.s.reviews[rv.ID] = *rv
	return nil
}

func (m memReviews) Update(ctx context.Context, rv *domain.Review) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	rv.UpdatedAt = time.Now()
	m.s.reviews[rv.ID] = *rv
	return nil
}

func (m memReviews) Delete(ctx context.Context, id uint) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.reviews, id)
	return nil
}

func (m memReviews) FindByID(ctx context.Context, id uint) (*domain.Review, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if rv, ok := m.s.reviews[id]; ok {
		return &rv, nil
	}
	return nil, nil
}

func (m memReviews) FindByGameID(ctx context.Context, gameID uint) ([]domain.Review, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]domain.Review, 0)
	for _, rv := range m.s.reviews {
		if rv.GameID == gameID {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m memReviews) FindByAuthorAndGame(ctx context.Context, authorID, gameID uint) (*domain.Review, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, rv := range m.s.reviews {
		if rv.AuthorID == authorID && rv.GameID == gameID {
			rv := rv
			return &rv, nil
		}
	}
	return nil, nil
}

// --- refresh tokens ---

type memTokens struct{ s *MemoryStore }

func (m memTokens) Create(ctx context.Context, t *domain.RefreshToken) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.tokenSeq++
	t.ID = m.s.tokenSeq
	t.CreatedAt = time.Now()
	m.s.tokens[t.ID] = *t
	return nil
}

func (m memTokens) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, t := range m.s.tokens {
		if t.Token == token {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (m memTokens) DeleteByToken(ctx context.Context, token string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for id, t := range m.s.tokens {
		if t.Token == token {
			delete(m.s.tokens, id)
		}
	}
	return nil
}
