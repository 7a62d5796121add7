package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func Test_Auth_Signup_Login_Profile(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	created := signupFreshUser(t, c, ctx, "e2e-auth")

	//signupで返ったtokenでそのままprofileが見える
	resp, body := c.doJSON(ctx, t, http.MethodGet, "/user/profile", created.Token, nil)
	requireStatus(t, resp, http.StatusOK, body)
	var profile UserDTO
	mustDecodeData(t, body, &profile)
	if profile.Email != created.User.Email {
		t.Fatalf("profile email=%s want %s", profile.Email, created.User.Email)
	}

	//同じメールでの再登録は409
	b, _ := json.Marshal(map[string]string{
		"name":     "dup",
		"email":    created.User.Email,
		"password": "password123",
	})
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/auth/signup", "", b)
	requireStatus(t, resp, http.StatusConflict, body)

	//間違ったパスワードは401
	lb, _ := json.Marshal(map[string]string{"email": created.User.Email, "password": "wrongpassword"})
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/auth/login", "", lb)
	requireStatus(t, resp, http.StatusUnauthorized, body)

	//正しいログイン
	lb, _ = json.Marshal(map[string]string{"email": created.User.Email, "password": "password123"})
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/auth/login", "", lb)
	requireStatus(t, resp, http.StatusOK, body)
}

func Test_Auth_PasswordChange_InvalidatesOldToken(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	created := signupFreshUser(t, c, ctx, "e2e-pwchange")
	oldToken := created.Token

	b, _ := json.Marshal(map[string]string{
		"current_password": "password123",
		"new_password":     "password456",
	})
	resp, body := c.doJSON(ctx, t, http.MethodPut, "/user/password", oldToken, b)
	requireStatus(t, resp, http.StatusOK, body)

	//token_versionが上がるので旧tokenは401になる
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/user/profile", oldToken, nil)
	requireStatus(t, resp, http.StatusUnauthorized, body)

	//新しいパスワードでログインし直せば通る
	lb, _ := json.Marshal(map[string]string{"email": created.User.Email, "password": "password456"})
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/auth/login", "", lb)
	requireStatus(t, resp, http.StatusOK, body)
	var out AuthResponse
	mustDecodeData(t, body, &out)

	resp, body = c.doJSON(ctx, t, http.MethodGet, "/user/profile", out.Token, nil)
	requireStatus(t, resp, http.StatusOK, body)
}

func Test_Admin_RequiresAdminRole(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	user := signupFreshUser(t, c, ctx, "e2e-notadmin")

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/admin/users?page=1&limit=20", user.Token, nil)
	requireStatus(t, resp, http.StatusForbidden, body)

	//未認証は401
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/admin/users?page=1&limit=20", "", nil)
	requireStatus(t, resp, http.StatusUnauthorized, body)
}
