package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/exp/slog"

	"windkey/internal/app/client/config"
	"windkey/internal/app/client/session"
	"windkey/internal/domain/breach"
	"windkey/internal/domain/category"
	"windkey/internal/domain/credential"
	"windkey/internal/domain/history"
	"windkey/internal/domain/passgen"
	"windkey/internal/domain/stats"
	"windkey/internal/domain/user"
)

const defaultTimeout = 30 * time.Second

// APIError ответ сервера с кодом >= 400. Error() возвращает сообщение сервера как есть.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is сопоставляет 401 с session.ErrUnauthorized
func (e *APIError) Is(target error) bool {
	return target == session.ErrUnauthorized && e.Status == http.StatusUnauthorized
}

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
	token     func() string
}

var _ session.Backend = (*httpClient)(nil)

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &httpClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log:       log.With(slog.String("component", "http_client")),
		baseURL:   cfg.BaseURL(),
		userAgent: "Windkey-Client/1.0",
		token:     func() string { return "" },
	}
}

// SetTokenSource задаёт источник токена сессии для защищённых запросов
func (h *httpClient) SetTokenSource(fn func() string) {
	h.token = fn
}

// HealthCheck проверяет доступность сервера
func (h *httpClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/health", "", nil)
	if err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) Register(ctx context.Context, email, password string) (Registration, error) {
	var out Registration
	err := h.call(ctx, http.MethodPost, "/api/register", "", user.BaseRequest{Email: email, Password: password}, &out)
	return out, err
}

func (h *httpClient) Login(ctx context.Context, email, password string) (session.LoginResult, error) {
	var out loginResponse
	if err := h.call(ctx, http.MethodPost, "/api/login", "", user.BaseRequest{Email: email, Password: password}, &out); err != nil {
		return session.LoginResult{}, err
	}

	return session.LoginResult{
		Requires2FA:    out.Requires2FA,
		TemporaryToken: out.TemporaryToken,
		Token:          out.Token,
		User:           out.User,
	}, nil
}

func (h *httpClient) VerifySecondFactor(ctx context.Context, tempToken, code string) (session.AuthResult, error) {
	body := struct {
		Code string `json:"two_factor_code"`
	}{Code: code}

	var out sessionResponse
	if err := h.call(ctx, http.MethodPost, "/api/verify-2fa", tempToken, body, &out); err != nil {
		return session.AuthResult{}, err
	}
	return session.AuthResult{Token: out.Token, User: out.User}, nil
}

func (h *httpClient) CheckAuth(ctx context.Context, token string) (session.CheckResult, error) {
	var out checkAuthResponse
	if err := h.call(ctx, http.MethodGet, "/api/check-auth", token, nil, &out); err != nil {
		return session.CheckResult{}, err
	}
	return session.CheckResult{Authenticated: out.Authenticated, User: out.User}, nil
}

func (h *httpClient) RefreshToken(ctx context.Context, token string) (session.AuthResult, error) {
	var out sessionResponse
	if err := h.call(ctx, http.MethodPost, "/api/refresh-token", token, nil, &out); err != nil {
		return session.AuthResult{}, err
	}
	return session.AuthResult{Token: out.Token, User: out.User}, nil
}

func (h *httpClient) Logout(ctx context.Context, token string) error {
	return h.call(ctx, http.MethodPost, "/api/logout", token, nil, nil)
}

func (h *httpClient) ListPasswords(ctx context.Context, search string, categoryID int) ([]credential.Credential, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if categoryID > 0 {
		q.Set("category_id", strconv.Itoa(categoryID))
	}

	path := "/api/passwords"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []credential.Credential
	err := h.call(ctx, http.MethodGet, path, h.token(), nil, &out)
	return out, err
}

func (h *httpClient) GetPassword(ctx context.Context, id int) (credential.Credential, error) {
	var out credential.Credential
	err := h.call(ctx, http.MethodGet, "/api/passwords/"+strconv.Itoa(id), h.token(), nil, &out)
	return out, err
}

func (h *httpClient) CreatePassword(ctx context.Context, req credential.CreateRequest) (credential.Credential, error) {
	var out credential.Credential
	err := h.call(ctx, http.MethodPost, "/api/passwords", h.token(), req, &out)
	return out, err
}

func (h *httpClient) UpdatePassword(ctx context.Context, id int, req credential.UpdateRequest) (credential.Credential, error) {
	var out credential.Credential
	err := h.call(ctx, http.MethodPut, "/api/passwords/"+strconv.Itoa(id), h.token(), req, &out)
	return out, err
}

func (h *httpClient) DeletePassword(ctx context.Context, id int) error {
	return h.call(ctx, http.MethodDelete, "/api/passwords/"+strconv.Itoa(id), h.token(), nil, nil)
}

func (h *httpClient) ListCategories(ctx context.Context) ([]category.Category, error) {
	var out []category.Category
	err := h.call(ctx, http.MethodGet, "/api/categories", h.token(), nil, &out)
	return out, err
}

func (h *httpClient) CreateCategory(ctx context.Context, req category.Request) (category.Category, error) {
	var out category.Category
	err := h.call(ctx, http.MethodPost, "/api/categories", h.token(), req, &out)
	return out, err
}

func (h *httpClient) UpdateCategory(ctx context.Context, id int, req category.Request) (category.Category, error) {
	var out category.Category
	err := h.call(ctx, http.MethodPut, "/api/categories/"+strconv.Itoa(id), h.token(), req, &out)
	return out, err
}

func (h *httpClient) DeleteCategory(ctx context.Context, id int) error {
	return h.call(ctx, http.MethodDelete, "/api/categories/"+strconv.Itoa(id), h.token(), nil, nil)
}

func (h *httpClient) GeneratePassword(ctx context.Context, p passgen.Policy) (GenerateResult, error) {
	q := url.Values{}
	q.Set("length", strconv.Itoa(p.Length))
	q.Set("uppercase", strconv.FormatBool(p.IncludeUppercase))
	q.Set("lowercase", strconv.FormatBool(p.IncludeLowercase))
	q.Set("numbers", strconv.FormatBool(p.IncludeDigits))
	q.Set("special", strconv.FormatBool(p.IncludeSymbols))

	var out GenerateResult
	err := h.call(ctx, http.MethodGet, "/api/generate-password?"+q.Encode(), h.token(), nil, &out)
	return out, err
}

func (h *httpClient) CheckStrength(ctx context.Context, password string) (passgen.StrengthResult, error) {
	var out passgen.StrengthResult
	err := h.call(ctx, http.MethodPost, "/api/check-password-strength", h.token(), passwordBody(password), &out)
	return out, err
}

func (h *httpClient) CheckBreach(ctx context.Context, password string) (breach.Result, error) {
	var out breach.Result
	err := h.call(ctx, http.MethodPost, "/api/check-password-breach", h.token(), passwordBody(password), &out)
	return out, err
}

func (h *httpClient) History(ctx context.Context, limit, offset int) (history.Page, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}

	path := "/api/history"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out history.Page
	err := h.call(ctx, http.MethodGet, path, h.token(), nil, &out)
	return out, err
}

func (h *httpClient) Stats(ctx context.Context, withBreaches bool) (stats.Stats, error) {
	path := "/api/stats"
	if withBreaches {
		path += "?breaches=true"
	}

	var out stats.Stats
	err := h.call(ctx, http.MethodGet, path, h.token(), nil, &out)
	return out, err
}

func passwordBody(password string) any {
	return struct {
		Password string `json:"password"`
	}{Password: password}
}

func (h *httpClient) call(ctx context.Context, method, path, token string, body, result any) error {
	resp, err := h.doRequest(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, result)
}

func (h *httpClient) doRequest(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	h.log.Debug("Отправка запроса", slog.String("method", method), slog.String("path", path))

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	h.log.Debug("Получен ответ", slog.Int("status", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return &APIError{Status: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("ошибка сервера: статус %d", resp.StatusCode)}
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}

	return nil
}
