// File: internal/service/identity.go
package service

import (
	"context"

	"civic-reports/internal/apperr"
	"civic-reports/internal/model"
	"civic-reports/internal/repository"
)

// Identity 將 bearer token 解析為完整使用者紀錄
type Identity struct {
	users *repository.Users
}

func NewIdentity(users *repository.Users) *Identity {
	return &Identity{users: users}
}

// CurrentUser 驗證令牌並載入 subject 使用者
// 令牌無效與使用者不存在一律回傳 ErrUnauthorized，不透露失敗的是哪一步
func (i *Identity) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	claims, err := VerifyAccessToken(token)
	if err != nil {
		return nil, apperr.ErrUnauthorized
	}
	user, err := i.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperr.ErrUnauthorized
	}
	return user, nil
}

// RequireAdmin 斷言使用者具管理員權限，通過時原樣回傳
// 必須接在 CurrentUser 之後使用
func RequireAdmin(user *model.User) (*model.User, error) {
	if !user.IsAdmin {
		return nil, apperr.ErrForbidden
	}
	return user, nil
}
