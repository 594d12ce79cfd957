package service

import (
	"context"
	"strings"
	"testing"

	"go-gamereview-api/internal/domain"
	"go-gamereview-api/internal/repo"
)

func newReviewFixture(t *testing.T) (*ReviewService, *repo.MemoryStore) {
	t.Helper()
	store := repo.NewMemoryStore()
	svc := NewReviewService(store.Reviews(), store.Games(), store, nil)
	return svc, store
}

func seedUser(t *testing.T, store *repo.MemoryStore, name string, role domain.Role) *domain.User {
	t.Helper()
	u := &domain.User{Name: name, Email: name + "@test.com", PasswordHash: "x", Role: role}
	if err := store.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u
}

func seedGame(t *testing.T, store *repo.MemoryStore, title string) *domain.Game {
	t.Helper()
	g := &domain.Game{Title: title, Genre: "RPG"}
	if err := store.Games().Create(context.Background(), g); err != nil {
		t.Fatalf("seed game %s: %v", title, err)
	}
	return g
}

func TestCreateReviewValidation(t *testing.T) {
	svc, store := newReviewFixture(t)
	ctx := context.Background()
	author := seedUser(t, store, "author", domain.RoleUser)
	game := seedGame(t, store, "Elden Ring")

	cases := []struct {
		name string
		in   CreateReviewInput
		kind domain.ErrorKind
	}{
		{"no author", CreateReviewInput{Rating: 3, GameID: game.ID}, domain.KindValidation},
		{"rating zero", CreateReviewInput{Rating: 0, GameID: game.ID, AuthorID: author.ID}, domain.KindValidation},
		{"rating six", CreateReviewInput{Rating: 6, GameID: game.ID, AuthorID: author.ID}, domain.KindValidation},
		{"comment too long", CreateReviewInput{Rating: 3, Comment: strings.Repeat("长", maxCommentLen+1), GameID: game.ID, AuthorID: author.ID}, domain.KindValidation},
		{"game missing", CreateReviewInput{Rating: 3, GameID: 999, AuthorID: author.ID}, domain.KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.in)
			wantKind(t, err, tc.kind)
		})
	}
}

func TestCreateReviewBoundaryRatings(t *testing.T) {
	svc, store := newReviewFixture(t)
	ctx := context.Background()
	game := seedGame(t, store, "Elden Ring")
	u1 := seedUser(t, store, "u1", domain.RoleUser)
	u2 := seedUser(t, store, "u2", domain.RoleUser)

	if _, err := svc.Create(ctx, CreateReviewInput{Rating: 1, GameID: game.ID, AuthorID: u1.ID}); err != nil {
		t.Fatalf("rating 1 should pass: %v", err)
	}
	if _, err := svc.Create(ctx, CreateReviewInput{Rating: 5, GameID: game.ID, AuthorID: u2.ID}); err != nil {
		t.Fatalf("rating 5 should pass: %v", err)
	}
	// 恰好 500 字符也允许
	u3 := seedUser(t, store, "u3", domain.RoleUser)
	if _, err := svc.Create(ctx, CreateReviewInput{Rating: 3, Comment: strings.Repeat("a", maxCommentLen), GameID: game.ID, AuthorID: u3.ID}); err != nil {
		t.Fatalf("500-char comment should pass: %v", err)
	}
}

func TestCreateReviewDuplicate(t *testing.T) {
	svc, store := newReviewFixture(t)
	ctx := context.Background()
	author := seedUser(t, store, "author", domain.RoleUser)
	game := seedGame(t, store, "Elden Ring")

	if _, err := svc.Create(ctx, CreateReviewInput{Rating: 4, GameID: game.ID, AuthorID: author.ID}); err != nil {
		t.Fatalf("first review: %v", err)
	}
	_, err := svc.Create(ctx, CreateReviewInput{Rating: 2, GameID: game.ID, AuthorID: author.ID})
	de := wantKind(t, err, domain.KindValidation)
	if de.Msg != "you have already reviewed this game" {
		t.Fatalf("msg = %q", de.Msg)
	}
}

func TestCreateReviewRecomputesAvgRating(t *testing.T) {
	svc, store := newReviewFixture(t)
	ctx := context.Background()
	game := seedGame(t, store, "Elden Ring")
	u1 := seedUser(t, store, "u1", domain.RoleUser)
	u2 := seedUser(t, store, "u2", domain.RoleUser)

	if _, err := svc.Create(ctx, CreateReviewInput{Rating: 5, GameID: game.ID, AuthorID: u1.ID}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	g, _ := store.Games().FindByID(ctx, game.ID)
	if g.AvgRating != 5 {
		t.Fatalf("avg after one review = %v, want 5", g.AvgRating)
	}

	if _, err := svc.Create(ctx, CreateReviewInput{Rating: 4, GameID: game.ID, AuthorID: u2.ID}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	g, _ = store.Games().FindByID(ctx, game.ID)
	if g.AvgRating != 4.5 {
		t.Fatalf("avg after two reviews = %v, want 4.5", g.AvgRating)
	}
}

func TestUpdateReviewValidation(t *testing.T) {
	svc, store := newReviewFixture(t)
	ctx := context.Background()
	author := seedUser(t, store, "author", domain.RoleUser)
	game := seedGame(t, store, "Elden Ring")
	rv, err := svc.Create(ctx, CreateReviewInput{Rating: 3, Comment: "ok", GameID: game.ID, AuthorID: author.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	bad := 0
	blank := "   "
	cases := []struct {
		name string
		in   UpdateReviewInput
	}{
		{"nothing to update", UpdateReviewInput{ID: rv.ID, RequesterID: author.ID, RequesterRole: domain.RoleUser}},
		{"rating out of range", UpdateReviewInput{ID: rv.ID, Rating: &bad, RequesterID: author.ID, RequesterRole: domain.RoleUser}},
		{"blank comment", UpdateReviewInput{ID: rv.ID, Comment: &blank, RequesterID: author.ID, RequesterRole: domain.RoleUser}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(ctx, tc.in)
			wantKind(t, err, domain.KindValidation)
		})
	}
}

func TestUpdateReviewAuthz(t *testing.T) {
	svc, store := newReviewFixture(t)
	ctx := context.Background()
	author := seedUser(t, store, "author", domain.RoleUser)
	other := seedUser(t, store, "other", domain.RoleUser)
	admin := seedUser(t, store, "admin", domain.RoleAdmin)
	game := seedGame(t, store, "Elden Ring")
	rv, err := svc.Create(ctx, CreateReviewInput{Rating: 3, GameID: game.ID, AuthorID: author.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	r := 4
	// 不存在的 id 先报 404，不泄露权限判断
	if _, err := svc.Update(ctx, UpdateReviewInput{ID: 999, Rating: &r, RequesterID: other.ID, RequesterRole: domain.RoleUser}); err == nil {
		t.Fatal("expected error")
	} else {
		wantKind(t, err, domain.KindNotFound)
	}

	// 既非作者也非 ADMIN
	_, err = svc.Update(ctx, UpdateReviewInput{ID: rv.ID, Rating: &r, RequesterID: other.ID, RequesterRole: domain.RoleUser})
	wantKind(t, err, domain.KindForbidden)

	// ADMIN 可以改别人的
	r2 := 2
	updated, err := svc.Update(ctx, UpdateReviewInput{ID: rv.ID, Rating: &r2, RequesterID: admin.ID, RequesterRole: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Rating != 2 {
		t.Fatalf("rating = %d, want 2", updated.Rating)
	}
	g, _ := store.Games().FindByID(ctx, game.ID)
	if g.AvgRating != 2 {
		t.Fatalf("avg after update = %v, want 2", g.AvgRating)
	}
}

func TestUpdateReviewPartial(t *testing.T) {
	svc, store := newReviewFixture(t)
	ctx := context.Background()
	author := seedUser(t, store, "author", domain.RoleUser)
	game := seedGame(t, store, "Elden Ring")
	rv, err := svc.Create(ctx, CreateReviewInput{Rating: 3, Comment: "original", GameID: game.ID, AuthorID: author.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	c := "revised"
	updated, err := svc.Update(ctx, UpdateReviewInput{ID: rv.ID, Comment: &c, RequesterID: author.ID, RequesterRole: domain.RoleUser})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Rating != 3 || updated.Comment != "revised" {
		t.Fatalf("updated = %+v", updated)
	}
}

func TestDeleteReview(t *testing.T) {
	svc, store := newReviewFixture(t)
	ctx := context.Background()
	author := seedUser(t, store, "author", domain.RoleUser)
	other := seedUser(t, store, "other", domain.RoleUser)
	game := seedGame(t, store, "Elden Ring")
	rv, err := svc.Create(ctx, CreateReviewInput{Rating: 5, GameID: game.ID, AuthorID: author.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	wantKind(t, svc.Delete(ctx, 999, author.ID, domain.RoleUser), domain.KindNotFound)
	wantKind(t, svc.Delete(ctx, rv.ID, other.ID, domain.RoleUser), domain.KindForbidden)

	if err := svc.Delete(ctx, rv.ID, author.ID, domain.RoleUser); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	// 最后一条删掉后平均分归零
	g, _ := store.Games().FindByID(ctx, game.ID)
	if g.AvgRating != 0 {
		t.Fatalf("avg after delete = %v, want 0", g.AvgRating)
	}
	left, _ := svc.ListByGame(ctx, game.ID)
	if len(left) != 0 {
		t.Fatalf("reviews left = %d, want 0", len(left))
	}
}

func TestListByGame(t *testing.T) {
	svc, store := newReviewFixture(t)
	ctx := context.Background()
	g1 := seedGame(t, store, "Elden Ring")
	g2 := seedGame(t, store, "Hades")
	u1 := seedUser(t, store, "u1", domain.RoleUser)
	u2 := seedUser(t, store, "u2", domain.RoleUser)

	if _, err := svc.Create(ctx, CreateReviewInput{Rating: 5, GameID: g1.ID, AuthorID: u1.ID}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateReviewInput{Rating: 4, GameID: g1.ID, AuthorID: u2.ID}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateReviewInput{Rating: 2, GameID: g2.ID, AuthorID: u1.ID}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	out, err := svc.ListByGame(ctx, g1.ID)
	if err != nil {
		t.Fatalf("ListByGame: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	for _, rv := range out {
		if rv.GameID != g1.ID {
			t.Fatalf("review %d belongs to game %d", rv.ID, rv.GameID)
		}
	}
}
