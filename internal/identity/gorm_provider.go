package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"holistay/internal/core/auth"
	"holistay/internal/domain"
	"holistay/pkg/utils"
)

const codeTTL = 24 * time.Hour

// GormProvider 用本地数据库实现 Provider：
// accounts 存凭据，auth_codes 存一次性确认码，会话是签名 cookie 令牌。
// 注册时同步建 profile（托管方案里由数据库触发器完成的事）。
type GormProvider struct {
	db     *gorm.DB
	tokens *auth.SessionTokens
	log    *zap.Logger
}

func NewGormProvider(db *gorm.DB, tokens *auth.SessionTokens, log *zap.Logger) *GormProvider {
	return &GormProvider{db: db, tokens: tokens, log: log}
}

func (p *GormProvider) SignUp(ctx context.Context, in SignUpParams) (*SignUpResult, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if len(in.Password) < 6 {
		return nil, ErrWeakPassword
	}

	acc := AccountModel{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: utils.HashPassword(in.Password),
	}
	code := AuthCodeModel{
		Code:      utils.NewID(),
		AccountID: acc.ID,
		ExpiresAt: time.Now().Add(codeTTL),
	}
	profile := domain.Profile{
		ID:       acc.ID,
		FullName: strings.TrimSpace(in.FullName),
		Role:     domain.RoleManager,
	}

	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&acc).Error; err != nil {
			return err
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		return tx.Create(&code).Error
	})
	if err != nil {
		if isDupKey(err) {
			return nil, ErrEmailTaken
		}
		// 非哨兵错误只进日志，对外给固定提示
		p.log.Error("identity signup", zap.Error(err))
		return nil, ErrSignUpFailed
	}

	// 没接邮件网关时把确认链接打到日志，便于本地走通流程
	p.log.Info("confirmation code issued",
		zap.String("email", email),
		zap.String("link", "/auth/callback?code="+code.Code),
	)

	return &SignUpResult{
		User:             User{ID: acc.ID, Email: acc.Email},
		ConfirmationCode: code.Code,
	}, nil
}

func (p *GormProvider) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var acc AccountModel
	err := p.db.WithContext(ctx).First(&acc, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		p.log.Error("identity signin", zap.Error(err))
		return nil, err
	}
	if !utils.CheckPassword(password, acc.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if acc.ConfirmedAt == nil {
		return nil, ErrEmailNotConfirmed
	}
	return p.issueSession(&acc)
}

func (p *GormProvider) ExchangeCodeForSession(ctx context.Context, code string) (*Session, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidCode
	}

	var acc AccountModel
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ac AuthCodeModel
		if err := tx.First(&ac, "code = ?", code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidCode
			}
			return err
		}
		if ac.UsedAt != nil || time.Now().After(ac.ExpiresAt) {
			return ErrInvalidCode
		}
		// 条件更新保证一次性：并发换同一枚码时只有一个能改到行
		now := time.Now()
		res := tx.Model(&AuthCodeModel{}).
			Where("code = ? AND used_at IS NULL", ac.Code).
			Update("used_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return ErrInvalidCode
		}
		if err := tx.First(&acc, "id = ?", ac.AccountID).Error; err != nil {
			return err
		}
		if acc.ConfirmedAt == nil {
			if err := tx.Model(&AccountModel{}).Where("id = ?", acc.ID).
				Update("confirmed_at", now).Error; err != nil {
				return err
			}
			acc.ConfirmedAt = &now
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCode) {
			return nil, ErrInvalidCode
		}
		p.log.Error("identity exchange code", zap.Error(err))
		return nil, err
	}
	return p.issueSession(&acc)
}

func (p *GormProvider) GetUser(ctx context.Context, token string) (*User, error) {
	claims, err := p.tokens.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	var acc AccountModel
	err = p.db.WithContext(ctx).First(&acc, "id = ?", claims.UID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return &User{ID: acc.ID, Email: acc.Email}, nil
}

func (p *GormProvider) issueSession(acc *AccountModel) (*Session, error) {
	tok, exp, err := p.tokens.Issue(acc.ID)
	if err != nil {
		p.log.Error("identity issue token", zap.Error(err))
		return nil, err
	}
	return &Session{
		Token:     tok,
		ExpiresAt: exp,
		User:      User{ID: acc.ID, Email: acc.Email},
	}, nil
}

func isDupKey(err error) bool {
	// 不依赖 gorm.ErrDuplicatedKey，避免驱动差异导致判断失效
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "unique failed")
}
