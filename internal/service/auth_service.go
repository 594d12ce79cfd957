package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go-gamereview-api/internal/core/auth"
	"go-gamereview-api/internal/domain"
	"go-gamereview-api/pkg/utils"
)

// AuthService 注册 / 登录 / 刷新。
// 登录失败不区分"用户不存在"和"密码错误"，统一口径防枚举。
type AuthService struct {
	users   domain.UserRepository
	tokens  domain.RefreshTokenRepository
	access  *auth.JWTer
	refresh *auth.JWTer
}

func NewAuthService(users domain.UserRepository, tokens domain.RefreshTokenRepository, access, refresh *auth.JWTer) *AuthService {
	return &AuthService{users: users, tokens: tokens, access: access, refresh: refresh}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Validation("name is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, domain.Validation("e-mail is required")
	}
	// 邮箱按存储原样精确比对，不做大小写归一
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Validation("e-mail already in use")
	}
	if len(in.Password) < 6 {
		return nil, domain.Validation("password must be at least 6 characters")
	}

	u := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: utils.HashPassword(in.Password),
		Role:         domain.RoleUser, // 注册一律 USER，角色不接受外部输入
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

type LoginResult struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *domain.User `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.Authentication("invalid credentials")
	}

	uid := formatUID(u.ID)
	accessToken, err := s.access.Issue(uid, string(u.Role))
	if err != nil {
		return nil, domain.Internal("issue token failed", err)
	}
	refreshToken, err := s.refresh.Issue(uid, string(u.Role))
	if err != nil {
		return nil, domain.Internal("issue token failed", err)
	}

	// 落库的过期时间取自刚签出的令牌自带的 exp
	expiresAt, err := s.refresh.Expiry(refreshToken)
	if err != nil {
		return nil, domain.Internal("decode token failed", err)
	}
	if err := s.tokens.Create(ctx, &domain.RefreshToken{
		Token:     refreshToken,
		UserID:    u.ID,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, err
	}

	return &LoginResult{AccessToken: accessToken, RefreshToken: refreshToken, User: u}, nil
}

type RefreshResult struct {
	AccessToken string       `json:"accessToken"`
	User        *domain.User `json:"user"`
}

// Refresh 只签新的 access token，refresh token 既不轮换也不删除
func (s *AuthService) Refresh(ctx context.Context, token string) (*RefreshResult, error) {
	stored, err := s.tokens.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, domain.Authentication("invalid refresh token")
	}
	if stored.ExpiresAt.Before(time.Now()) {
		// 惰性过期：失败时顺手删掉存着的记录
		_ = s.tokens.DeleteByToken(ctx, token)
		return nil, domain.Authentication("refresh token expired")
	}

	// 库里有还不够，签名也要过（防篡改）
	claims, err := s.refresh.Parse(token)
	if err != nil {
		return nil, domain.Authentication("invalid refresh token")
	}
	uid, err := parseUID(claims.UID)
	if err != nil {
		return nil, domain.Authentication("invalid refresh token")
	}
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.Authentication("user not found")
	}

	accessToken, err := s.access.Issue(formatUID(u.ID), string(u.Role))
	if err != nil {
		return nil, domain.Internal("issue token failed", err)
	}
	return &RefreshResult{AccessToken: accessToken, User: u}, nil
}

// 主体统一按十进制字符串进出令牌
func formatUID(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func parseUID(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return uint(v), err
}
