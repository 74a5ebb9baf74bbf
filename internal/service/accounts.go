// File: internal/service/accounts.go
package service

import (
	"context"
	"strings"
	"time"

	"civic-reports/internal/apperr"
	"civic-reports/internal/model"
	"civic-reports/internal/repository"
)

// Accounts 帳號註冊與登入
type Accounts struct {
	users    *repository.Users
	tokenTTL time.Duration
}

func NewAccounts(users *repository.Users, tokenTTL time.Duration) *Accounts {
	if tokenTTL <= 0 {
		tokenTTL = 60 * time.Minute
	}
	return &Accounts{users: users, tokenTTL: tokenTTL}
}

// Register 建立新帳號，email 重複回傳 ErrConflict
// Email 轉為小寫以確保一致性，明文密碼僅存 bcrypt 哈希
func (a *Accounts) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return a.users.Create(ctx, email, hash)
}

// Login 驗證憑證並簽發存取令牌
// 查無帳號回傳 ErrNotFound，密碼不符回傳 ErrUnauthorized
func (a *Accounts) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, err
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return "", time.Time{}, apperr.ErrUnauthorized
	}
	return IssueAccessToken(*user, a.tokenTTL)
}
