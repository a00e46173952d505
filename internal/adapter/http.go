package adapter

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/go-resty/resty/v2"
)

const profilePictureField = "profilePicture"

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// The base URL from adapterCfg.HTTPAddress is normalised (a missing scheme
// defaults to http) and every request times out after
// adapterCfg.RequestTimeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. The token is whitespace-trimmed.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs a multipart form to
// POST /api/register and returns the created user.
func (h *httpServerAdapter) Register(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	var registered models.RegisterResponse

	req := h.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"firstName":    request.FirstName,
			"lastName":     request.LastName,
			"mobileNumber": request.MobileNumber,
			"password":     request.Password,
		}).
		SetResult(&registered)
	attachPicture(req, request.ProfilePicture)

	resp, err := req.Post("/api/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	h.logger.Debug().Int64("id", registered.User.ID).Msg("user registered")
	return registered.User, nil
}

// Login implements [ServerAdapter]. It POSTs the credentials as JSON to
// POST /api/login. The token is taken from the response body, or from the
// Authorization response header when the body carries none.
func (h *httpServerAdapter) Login(ctx context.Context, request models.LoginRequest) (models.User, error) {
	var loggedIn models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&loggedIn).
		Post("/api/login")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token := loggedIn.Token
	if token == "" {
		token, err = utils.ParseBearerToken(resp.Header().Get("Authorization"))
		if err != nil {
			return models.User{}, fmt.Errorf("login parse bearer token: %w", err)
		}
	}

	h.SetToken(token)
	return loggedIn.User, nil
}

// CurrentUser implements [ServerAdapter] via GET /api/user.
func (h *httpServerAdapter) CurrentUser(ctx context.Context) (models.User, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	resp, err := req.SetResult(&user).Get("/api/user")
	if err != nil {
		return models.User{}, fmt.Errorf("current user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// ListUsers implements [ServerAdapter] via GET /api/users.
func (h *httpServerAdapter) ListUsers(ctx context.Context) ([]models.User, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	var users []models.User
	resp, err := req.SetResult(&users).Get("/api/users")
	if err != nil {
		return nil, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return users, nil
}

// UpdateUser implements [ServerAdapter] via PATCH /api/users/{id}. The body
// is multipart when a new picture is attached and url-encoded otherwise.
func (h *httpServerAdapter) UpdateUser(ctx context.Context, update models.UserUpdate) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	fields := make(map[string]string)
	setIfPresent(fields, "firstName", update.FirstName)
	setIfPresent(fields, "lastName", update.LastName)
	setIfPresent(fields, "mobileNumber", update.MobileNumber)
	setIfPresent(fields, "password", update.Password)

	req.SetFormData(fields)
	attachPicture(req, update.ProfilePicture)

	resp, err := req.Patch("/api/users/" + strconv.FormatInt(update.ID, 10))
	if err != nil {
		return fmt.Errorf("update user request: %w", err)
	}

	return mapHTTPError(resp)
}

// DeleteUser implements [ServerAdapter] via DELETE /api/users/{id}.
func (h *httpServerAdapter) DeleteUser(ctx context.Context, id int64) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Delete("/api/users/" + strconv.FormatInt(id, 10))
	if err != nil {
		return fmt.Errorf("delete user request: %w", err)
	}

	return mapHTTPError(resp)
}

// Version implements [ServerAdapter] via GET /api/version.
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}

	return h.client.R().
		SetContext(ctx).
		SetAuthScheme("Bearer").
		SetAuthToken(token), nil
}

func attachPicture(req *resty.Request, picture *models.Picture) {
	if picture == nil {
		return
	}

	contentType := picture.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.SetMultipartField(profilePictureField, picture.FileName, contentType, bytes.NewReader(picture.Data))
}

func setIfPresent(fields map[string]string, name string, value *string) {
	if value != nil {
		fields[name] = *value
	}
}
