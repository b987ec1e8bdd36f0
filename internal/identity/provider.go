// Package identity 提供身份服务：注册、密码登录、确认码换会话、令牌解析。
// 调用方只依赖 Provider 接口；角色不在这里解释，统一由 profiles 决定。
package identity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrInvalidCode        = errors.New("auth code is invalid or expired")
	ErrInvalidToken       = errors.New("session token is invalid or expired")

	// ErrSignUpFailed 存储层失败的对外替身。哨兵错误可以原样展示给用户，
	// 底层数据库错误不行，统一降级成这个。
	ErrSignUpFailed = errors.New("Não foi possível criar a conta. Tente novamente.")
)

// User 已认证主体。只读，应用侧从不修改。
type User struct {
	ID    string
	Email string
}

// Session 已签发的会话令牌
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      User
}

type SignUpParams struct {
	Email    string
	Password string
	FullName string // 写入 profile，相当于托管端"注册触发器"消费的 metadata
}

// SignUpResult 注册结果。注册后尚未确认邮箱，所以没有会话，
// 只有一枚用于 /auth/callback 的一次性确认码。
type SignUpResult struct {
	User             User
	ConfirmationCode string
}

type Provider interface {
	SignUp(ctx context.Context, p SignUpParams) (*SignUpResult, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	ExchangeCodeForSession(ctx context.Context, code string) (*Session, error)
	// GetUser 校验会话令牌并返回其主体；任何失败都返回错误，由调用方按匿名处理
	GetUser(ctx context.Context, token string) (*User, error)
}
