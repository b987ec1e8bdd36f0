// Package session 把请求里的会话 cookie 解析成 (身份, 角色)。
// 只读、无副作用；任何校验失败都按匿名处理，不向上抛原始错误。
package session

import (
	"context"

	"go.uber.org/zap"

	"holistay/internal/domain"
	"holistay/internal/identity"
)

// Identity 当前请求的已认证主体
type Identity struct {
	ID    string
	Email string
}

type Resolver struct {
	provider identity.Provider
	profiles domain.ProfileRepository
	log      *zap.Logger
}

func NewResolver(provider identity.Provider, profiles domain.ProfileRepository, log *zap.Logger) *Resolver {
	return &Resolver{provider: provider, profiles: profiles, log: log}
}

// Resolve 解析会话令牌。返回 ok=false 表示匿名。
// 找不到 profile 时角色按空串处理，路由上等同 manager。
func (r *Resolver) Resolve(ctx context.Context, token string) (ident *Identity, role string, ok bool) {
	if token == "" {
		return nil, "", false
	}
	u, err := r.provider.GetUser(ctx, token)
	if err != nil {
		return nil, "", false
	}
	p, err := r.profiles.FindByID(ctx, u.ID)
	if err != nil {
		r.log.Warn("resolve profile", zap.String("uid", u.ID), zap.Error(err))
		p = nil
	}
	if p != nil {
		role = p.Role
	}
	return &Identity{ID: u.ID, Email: u.Email}, role, true
}
