package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

// サーバーを起動した上で E2E=1 BASE_URL=... go test ./tests/e2e で回す
type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewTestClient(t *testing.T) *TestClient {
	t.Helper()

	if os.Getenv("E2E") == "" {
		t.Skip("set E2E=1 to run e2e tests against a running server")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &TestClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type SuccessResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type UserDTO struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	Cart     []int64 `json:"cart"`
	IsActive bool    `json:"is_active"`
}

type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type ProductDTO struct {
	ID       int64  `json:"id"`
	SellerID int64  `json:"seller_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
	Status   string `json:"status"`
}

type OrderDTO struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	Status      string `json:"status"`
	ProductName string `json:"product_name"`
	Price       int64  `json:"price"`
}

func (c *TestClient) doJSON(
	ctx context.Context,
	t *testing.T,
	method string,
	path string,
	bearer string,
	bodyBytes []byte,
) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if bodyBytes != nil {
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("http.NewRequest failed: %v", err)
	}

	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("HTTP.Do failed: %v", err)
	}

	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	return resp, data
}

func requireStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, want, string(body))
	}
}

func mustDecodeSuccess(t *testing.T, body []byte) SuccessResponse {
	t.Helper()
	var v SuccessResponse
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(SuccessResponse) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeData(t *testing.T, body []byte, out any) {
	t.Helper()
	env := mustDecodeSuccess(t, body)
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("json.Unmarshal(data) failed: %v data=%s", err, string(env.Data))
	}
}

func mustDecodeError(t *testing.T, body []byte) ErrorResponse {
	t.Helper()
	var v ErrorResponse
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(ErrorResponse) failed: %v body=%s", err, string(body))
	}
	return v
}

// 新規ユーザーを作ってtokenとuserを返す（メールは毎回ユニーク）
func signupFreshUser(t *testing.T, c *TestClient, ctx context.Context, prefix string) AuthResponse {
	t.Helper()

	email := fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
	b, _ := json.Marshal(map[string]string{
		"name":     prefix,
		"email":    email,
		"password": "password123",
	})

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auth/signup", "", b)
	requireStatus(t, resp, http.StatusCreated, body)

	var out AuthResponse
	mustDecodeData(t, body, &out)
	if strings.TrimSpace(out.Token) == "" {
		t.Fatalf("token is empty: body=%s", string(body))
	}
	return out
}

// 管理者でログイン（seed済みの管理者アカウント前提）
func adminLogin(t *testing.T, c *TestClient, ctx context.Context) string {
	t.Helper()

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "password123"
	}

	b, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auth/login", "", b)
	requireStatus(t, resp, http.StatusOK, body)

	var out AuthResponse
	mustDecodeData(t, body, &out)
	if strings.TrimSpace(out.Token) == "" {
		t.Fatalf("admin token is empty: body=%s", string(body))
	}
	return out.Token
}

// 商品を出品して管理者承認でACTIVEにするところまで
func createActiveProduct(t *testing.T, c *TestClient, ctx context.Context, sellerToken string, adminToken string, name string, price int64) ProductDTO {
	t.Helper()

	b, _ := json.Marshal(map[string]any{
		"name":        name,
		"description": "e2e product",
		"category":    "e2e",
		"price":       price,
	})
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/user/products", sellerToken, b)
	requireStatus(t, resp, http.StatusCreated, body)

	var p ProductDTO
	mustDecodeData(t, body, &p)
	if p.Status != "UNDER_REVIEW" {
		t.Fatalf("new product status=%s want UNDER_REVIEW", p.Status)
	}

	//承認
	sb, _ := json.Marshal(map[string]string{"status": "ACTIVE"})
	resp, body = c.doJSON(ctx, t, http.MethodPut, fmt.Sprintf("/admin/products/%d/status", p.ID), adminToken, sb)
	requireStatus(t, resp, http.StatusOK, body)

	mustDecodeData(t, body, &p)
	if p.Status != "ACTIVE" {
		t.Fatalf("approved product status=%s want ACTIVE", p.Status)
	}
	return p
}
