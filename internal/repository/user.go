// File: internal/repository/user.go
package repository

import (
	"context"
	"fmt"
	"time"

	"civic-reports/internal/apperr"
	"civic-reports/internal/docstore"
	"civic-reports/internal/model"
)

const usersCollection = "users"

// Users 使用者帳號儲存層
type Users struct {
	col docstore.Collection
}

func NewUsers(store docstore.Store) *Users {
	return &Users{col: store.Collection(usersCollection)}
}

// Create 先以 email 等值查詢確認不存在再寫入
// 查詢與寫入之間沒有原子性保證，重複註冊的競爭窗口由低並發量兜底
func (r *Users) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	existing, err := r.col.Query(ctx, map[string]any{"email": email})
	if err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	if len(existing) > 0 {
		return nil, apperr.ErrConflict
	}

	now := time.Now().UTC()
	id, err := r.col.Add(ctx, map[string]any{
		"email":      email,
		"password":   passwordHash,
		"is_admin":   false,
		"created_at": now.Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return &model.User{ID: id, Email: email, PasswordHash: passwordHash, CreatedAt: now}, nil
}

func (r *Users) GetByID(ctx context.Context, id string) (*model.User, error) {
	doc, err := r.col.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return decodeUser(doc), nil
}

func (r *Users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	docs, err := r.col.Query(ctx, map[string]any{"email": email})
	if err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	if len(docs) == 0 {
		return nil, apperr.ErrNotFound
	}
	return decodeUser(&docs[0]), nil
}

func decodeUser(doc *docstore.Document) *model.User {
	u := &model.User{ID: doc.ID}
	u.Email, _ = doc.Data["email"].(string)
	u.PasswordHash, _ = doc.Data["password"].(string)
	u.IsAdmin, _ = doc.Data["is_admin"].(bool)
	if raw, ok := doc.Data["created_at"].(string); ok {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			u.CreatedAt = t
		}
	}
	return u
}
