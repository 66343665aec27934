package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Shamu9311/sport-front/internal/models"
)

// TokenSource supplies the current bearer token. An empty string means
// "no session"; the request is then sent without an Authorization header.
type TokenSource interface {
	Token() string
}

// HTTPClient implements Client over the backend's REST/JSON API.
type HTTPClient struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	onUnauthorized func()
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// SetUnauthorizedHandler registers fn to be invoked whenever an
// authenticated request is rejected with 401, i.e. the token has expired or
// been invalidated server-side. The handler must be safe to call from any
// request path.
func (c *HTTPClient) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

type requestOpts struct {
	authed bool
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any, opts requestOpts) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if opts.authed && c.tokens != nil {
		if t := c.tokens.Token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if !opts.authed {
			return ErrInvalidCredentials
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		var e struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &StatusError{Code: resp.StatusCode, Message: e.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// ---- auth ----

type authResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var resp authResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp, requestOpts{}); err != nil {
		return nil, "", err
	}
	return &resp.User, resp.Token, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	var resp authResponse
	body := map[string]string{"username": username, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &resp, requestOpts{}); err != nil {
		return nil, "", err
	}
	return &resp.User, resp.Token, nil
}

// ---- profile ----

// wireProfile is the backend representation: dietary restrictions travel as
// one comma-joined string.
type wireProfile struct {
	Age                 int     `json:"age"`
	Weight              float64 `json:"weight"`
	Height              float64 `json:"height"`
	Gender              string  `json:"gender"`
	ActivityLevel       string  `json:"activity_level"`
	TrainingFrequency   string  `json:"training_frequency"`
	PrimaryGoal         string  `json:"primary_goal"`
	SweatLevel          string  `json:"sweat_level"`
	CaffeineTolerance   string  `json:"caffeine_tolerance"`
	DietaryRestrictions string  `json:"dietary_restrictions"`
}

func (w *wireProfile) toModel() *models.UserProfile {
	return &models.UserProfile{
		Age:                 w.Age,
		Weight:              w.Weight,
		Height:              w.Height,
		Gender:              w.Gender,
		ActivityLevel:       w.ActivityLevel,
		TrainingFrequency:   w.TrainingFrequency,
		PrimaryGoal:         w.PrimaryGoal,
		SweatLevel:          w.SweatLevel,
		CaffeineTolerance:   w.CaffeineTolerance,
		DietaryRestrictions: models.SplitRestrictions(w.DietaryRestrictions),
	}
}

func fromModel(p *models.UserProfile) *wireProfile {
	return &wireProfile{
		Age:                 p.Age,
		Weight:              p.Weight,
		Height:              p.Height,
		Gender:              p.Gender,
		ActivityLevel:       p.ActivityLevel,
		TrainingFrequency:   p.TrainingFrequency,
		PrimaryGoal:         p.PrimaryGoal,
		SweatLevel:          p.SweatLevel,
		CaffeineTolerance:   p.CaffeineTolerance,
		DietaryRestrictions: models.JoinRestrictions(p.DietaryRestrictions),
	}
}

func (c *HTTPClient) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	var resp struct {
		Success bool `json:"success"`
		Data    *struct {
			User    models.User  `json:"user"`
			Profile *wireProfile `json:"profile"`
		} `json:"data"`
	}

	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/profile/%d/profile", userID), nil, &resp, requestOpts{authed: true})
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !resp.Success || resp.Data == nil || resp.Data.Profile == nil {
		return nil, nil
	}
	return resp.Data.Profile.toModel(), nil
}

func (c *HTTPClient) SaveProfile(ctx context.Context, userID int64, p *models.UserProfile) error {
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/profile/%d/profile", userID), fromModel(p), &resp, requestOpts{authed: true})
	if err != nil {
		return err
	}
	if !resp.Success {
		return &RejectedError{Message: resp.Message}
	}
	return nil
}

// ---- training ----

func (c *HTTPClient) TrainingSessions(ctx context.Context, userID int64) ([]models.TrainingSession, error) {
	var out []models.TrainingSession
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/training/user/%d", userID), nil, &out, requestOpts{authed: true})
	return out, err
}

func (c *HTTPClient) CreateTrainingSession(ctx context.Context, s *models.TrainingSession) (*models.TrainingSession, error) {
	var out models.TrainingSession
	if err := c.do(ctx, http.MethodPost, "/api/training", s, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) TrainingSession(ctx context.Context, sessionID int64) (*models.TrainingSession, error) {
	var out models.TrainingSession
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/training/%d", sessionID), nil, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateTrainingSession(ctx context.Context, s *models.TrainingSession) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/training/%d", s.SessionID), s, nil, requestOpts{authed: true})
}

func (c *HTTPClient) DeleteTrainingSession(ctx context.Context, sessionID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/training/%d", sessionID), nil, nil, requestOpts{authed: true})
}

// ---- recommendations ----

// recommendationList tolerates both wire shapes the backend has used:
// a bare array and an object with a "recommendations" property.
type recommendationList []models.Recommendation

func (l *recommendationList) UnmarshalJSON(data []byte) error {
	var direct []models.Recommendation
	if err := json.Unmarshal(data, &direct); err == nil {
		*l = direct
		return nil
	}
	var wrapped struct {
		Recommendations []models.Recommendation `json:"recommendations"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*l = wrapped.Recommendations
	return nil
}

func (c *HTTPClient) SessionRecommendations(ctx context.Context, sessionID, userID int64) ([]models.Recommendation, error) {
	var out recommendationList
	path := fmt.Sprintf("/api/training/%d/recommendations?userId=%d", sessionID, userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SavedRecommendations(ctx context.Context, userID int64) ([]models.Recommendation, error) {
	var out recommendationList
	path := fmt.Sprintf("/api/recommendations/saved/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return out, nil
}

// ---- preferences ----

func (c *HTTPClient) NotificationPreferences(ctx context.Context, userID int64) (*models.NotificationPreferences, error) {
	var resp struct {
		Data models.NotificationPreferences `json:"data"`
	}
	path := fmt.Sprintf("/api/users/%d/notification-preferences", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// ---- products ----

func (c *HTTPClient) ProductCategories(ctx context.Context) ([]models.ProductCategory, error) {
	var out []models.ProductCategory
	err := c.do(ctx, http.MethodGet, "/api/products/categories", nil, &out, requestOpts{authed: true})
	return out, err
}

func (c *HTTPClient) ProductsByCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	var out []models.Product
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/category/%d", categoryID), nil, &out, requestOpts{authed: true})
	return out, err
}

// ProductDetail assembles the product screen from the three catalog
// endpoints. Missing nutrition or flavors are not an error.
func (c *HTTPClient) ProductDetail(ctx context.Context, productID int64) (*models.ProductDetail, error) {
	var p models.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", productID), nil, &p, requestOpts{authed: true}); err != nil {
		return nil, err
	}

	detail := &models.ProductDetail{Product: p}

	var n models.ProductNutrition
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d/nutrition", productID), nil, &n, requestOpts{authed: true})
	if err == nil {
		detail.Nutrition = n
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	var fl []models.ProductFlavor
	err = c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d/flavors", productID), nil, &fl, requestOpts{authed: true})
	if err == nil {
		detail.Flavors = fl
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	return detail, nil
}

// ---- consumption ----

func (c *HTTPClient) AddConsumption(ctx context.Context, userID, productID int64, quantity int) error {
	body := map[string]any{"productId": productID, "quantity": quantity}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/users/%d/consumption", userID), body, nil, requestOpts{authed: true})
}
