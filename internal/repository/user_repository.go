package repository

import (
	"app/internal/domain/model"
	"context"
)

// 管理者一覧の検索条件
type AdminUserListFilter struct {
	Page   int
	Limit  int
	Role   string
	Search string
}

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを一件取得する（小文字で保存している前提）。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// プロフィール等の更新
	Update(ctx context.Context, user *model.User) error
	//カート（商品IDリスト）だけを書き換える
	UpdateCart(ctx context.Context, userID int64, cart []int64) error
	//パスワードハッシュだけを書き換える
	UpdatePasswordHash(ctx context.Context, userID int64, hash string) error
	//ロール変更（管理者操作）
	UpdateRole(ctx context.Context, userID int64, role model.Role) error
	//トークンのバージョンを＋１（強制ログアウト）
	IncrementTokenVersion(ctx context.Context, userID int64) error

	ListAdmin(ctx context.Context, f AdminUserListFilter) ([]model.User, int64, error)
	CountAll(ctx context.Context) (int64, error)
}
