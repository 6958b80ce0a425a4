package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/photoshare/internal/client/models"
	"github.com/dmitrijs2005/photoshare/internal/common"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"golang.org/x/time/rate"
)

// Operation names, used in errors and to classify 4xx answers.
const (
	OpRegister         = "register"
	OpLogin            = "login"
	OpCreateProfile    = "create profile"
	OpUpdateProfile    = "update profile"
	OpFetchMyProfile   = "fetch my profile"
	OpFetchAllProfiles = "fetch profiles"
	OpFetchAllPosts    = "fetch posts"
	OpFetchAllComments = "fetch comments"
)

const (
	pathRegister  = "api/register/"
	pathLogin     = "authen/jwt/create"
	pathProfile   = "api/profile/"
	pathMyProfile = "api/myprofile/"
	pathPost      = "api/post/"
	pathComment   = "api/comment/"
)

// maxErrorBody caps how much of an error response is kept in APIError.Body.
const maxErrorBody = 4 << 10

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenLoader
	limiter *rate.Limiter
}

// Option customises an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.http.Timeout = d }
}

// WithRateLimit paces outgoing requests to rps per second. Zero or negative
// disables pacing.
func WithRateLimit(rps float64) Option {
	return func(h *HTTPClient) {
		if rps <= 0 {
			h.limiter = nil
			return
		}
		h.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewHTTPClient returns a client for the API rooted at baseURL. Authenticated
// calls read their token from tokens each time they run.
func NewHTTPClient(baseURL string, tokens TokenLoader, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := &HTTPClient{baseURL: u, http: &http.Client{}, tokens: tokens}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) Register(ctx context.Context, creds models.Credentials) (models.Account, error) {
	var acc models.Account
	err := c.doJSON(ctx, OpRegister, http.MethodPost, pathRegister, creds, false, &acc)
	return acc, err
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (string, error) {
	var tp models.TokenPair
	if err := c.doJSON(ctx, OpLogin, http.MethodPost, pathLogin, creds, false, &tp); err != nil {
		return "", err
	}
	if tp.Access == "" {
		return "", &APIError{Op: OpLogin, StatusCode: http.StatusOK, Body: "empty access token", kind: ErrAuthRejected}
	}
	return tp.Access, nil
}

func (c *HTTPClient) CreateProfile(ctx context.Context, nickName string) (models.Profile, error) {
	var p models.Profile
	body := map[string]string{"nickName": nickName}
	err := c.doJSON(ctx, OpCreateProfile, http.MethodPost, pathProfile, body, true, &p)
	return p, err
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, profile models.Profile, img *models.ProfileImage) (models.Profile, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("nickName", profile.NickName); err != nil {
		return models.Profile{}, fmt.Errorf("%s: %w", OpUpdateProfile, err)
	}
	if img != nil {
		part, err := mw.CreateFormFile("img", img.FileName)
		if err != nil {
			return models.Profile{}, fmt.Errorf("%s: %w", OpUpdateProfile, err)
		}
		if _, err := part.Write(img.Data); err != nil {
			return models.Profile{}, fmt.Errorf("%s: %w", OpUpdateProfile, err)
		}
	}
	if err := mw.Close(); err != nil {
		return models.Profile{}, fmt.Errorf("%s: %w", OpUpdateProfile, err)
	}

	var p models.Profile
	path := pathProfile + strconv.FormatInt(profile.ID, 10) + "/"
	err := c.do(ctx, OpUpdateProfile, http.MethodPut, path, &buf, mw.FormDataContentType(), true, &p)
	return p, err
}

func (c *HTTPClient) FetchMyProfile(ctx context.Context) (models.Profile, error) {
	var list []models.Profile
	if err := c.doJSON(ctx, OpFetchMyProfile, http.MethodGet, pathMyProfile, nil, true, &list); err != nil {
		return models.Profile{}, err
	}
	if len(list) == 0 {
		return models.Profile{}, &APIError{Op: OpFetchMyProfile, StatusCode: http.StatusOK, kind: ErrProfileNotFound}
	}
	return list[0], nil
}

func (c *HTTPClient) FetchAllProfiles(ctx context.Context) ([]models.Profile, error) {
	var list []models.Profile
	err := c.doJSON(ctx, OpFetchAllProfiles, http.MethodGet, pathProfile, nil, true, &list)
	return list, err
}

func (c *HTTPClient) FetchAllPosts(ctx context.Context) ([]models.Post, error) {
	var list []models.Post
	err := c.doJSON(ctx, OpFetchAllPosts, http.MethodGet, pathPost, nil, true, &list)
	return list, err
}

func (c *HTTPClient) FetchAllComments(ctx context.Context) ([]models.Comment, error) {
	var list []models.Comment
	err := c.doJSON(ctx, OpFetchAllComments, http.MethodGet, pathComment, nil, true, &list)
	return list, err
}

// doJSON encodes in (when non-nil) as the JSON request body.
func (c *HTTPClient) doJSON(ctx context.Context, op, method, path string, in any, auth bool, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, op, method, path, body, contentType, auth, out)
}

func (c *HTTPClient) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, auth bool, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return transportError(op, err)
		}
	}

	endpoint := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	if auth {
		token, err := c.tokens.Load(ctx)
		if err != nil {
			return &APIError{Op: op, kind: ErrUnauthorized, cause: err}
		}
		req.Header.Set("Authorization", common.AuthorizationValue(token))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return statusError(op, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return transportError(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
