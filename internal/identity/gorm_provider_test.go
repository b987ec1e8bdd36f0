package identity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"holistay/internal/core/auth"
	"holistay/internal/identity"
)

func newMockProvider(t *testing.T) (*identity.GormProvider, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)

	tokens := &auth.SessionTokens{Secret: []byte("test-secret"), Issuer: "holistay", TTL: time.Hour}
	return identity.NewGormProvider(db, tokens, zap.NewNop()), mock
}

func TestSignUp_WeakPassword(t *testing.T) {
	p, mock := newMockProvider(t)

	_, err := p.SignUp(context.Background(), identity.SignUpParams{
		Email: "a@b.com", Password: "123",
	})
	require.ErrorIs(t, err, identity.ErrWeakPassword)
	require.NoError(t, mock.ExpectationsWereMet(), "no storage access for weak password")
}

func TestSignUp_StoreErrorIsOpaque(t *testing.T) {
	p, mock := newMockProvider(t)
	mock.ExpectBegin().WillReturnError(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))

	_, err := p.SignUp(context.Background(), identity.SignUpParams{
		Email: "a@b.com", Password: "123456", FullName: "Ana",
	})
	require.ErrorIs(t, err, identity.ErrSignUpFailed)
	require.NotContains(t, err.Error(), "connection refused")
	require.NotContains(t, err.Error(), "dial tcp")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExchangeCode_ConcurrentUseLosesRace(t *testing.T) {
	// 读到 used_at 为空，但条件更新没改到行（另一请求先用掉了）——必须拒绝
	p, mock := newMockProvider(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "auth_codes"`).
		WillReturnRows(sqlmock.NewRows([]string{"code", "account_id", "expires_at", "used_at", "created_at"}).
			AddRow("code-1", "acc-1", time.Now().Add(time.Hour), nil, time.Now()))
	mock.ExpectExec(`UPDATE "auth_codes"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := p.ExchangeCodeForSession(context.Background(), "code-1")
	require.ErrorIs(t, err, identity.ErrInvalidCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExchangeCode_UsedCodeRejected(t *testing.T) {
	p, mock := newMockProvider(t)
	used := time.Now().Add(-time.Minute)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "auth_codes"`).
		WillReturnRows(sqlmock.NewRows([]string{"code", "account_id", "expires_at", "used_at", "created_at"}).
			AddRow("code-1", "acc-1", time.Now().Add(time.Hour), used, time.Now()))
	mock.ExpectRollback()

	_, err := p.ExchangeCodeForSession(context.Background(), "code-1")
	require.ErrorIs(t, err, identity.ErrInvalidCode)
	require.NoError(t, mock.ExpectationsWereMet())
}
