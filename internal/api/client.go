// Package api contains the client-side contract for the remote nutrition
// backend and its HTTP implementation.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering
//     auth, profile, training sessions, recommendations, the product
//     catalog, and notification preferences.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that injects the
//     bearer token on every authenticated request, maps HTTP statuses to
//     sentinel errors, and reports authentication rejections to a registered
//     callback so the session layer can force a logout.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrInvalidCredentials,
// ErrNotFound.
package api

import (
	"context"

	"github.com/Shamu9311/sport-front/internal/models"
)

// Client is the API surface the application consumes. All operations honor
// context cancellation and timeouts.
type Client interface {
	// Login authenticates with email and password and returns the user
	// record plus a bearer token. Invalid credentials map to
	// ErrInvalidCredentials, no response to ErrUnavailable.
	Login(ctx context.Context, email, password string) (*models.User, string, error)

	// Register creates an account and returns the user plus a bearer token
	// (the backend logs a fresh registration straight in).
	Register(ctx context.Context, username, email, password string) (*models.User, string, error)

	// GetProfile returns the user's nutrition profile, or (nil, nil) when
	// the user has no profile yet. A 404 is "no profile", not an error.
	GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error)

	// SaveProfile creates or replaces the user's nutrition profile.
	SaveProfile(ctx context.Context, userID int64, p *models.UserProfile) error

	TrainingSessions(ctx context.Context, userID int64) ([]models.TrainingSession, error)
	CreateTrainingSession(ctx context.Context, s *models.TrainingSession) (*models.TrainingSession, error)
	TrainingSession(ctx context.Context, sessionID int64) (*models.TrainingSession, error)
	UpdateTrainingSession(ctx context.Context, s *models.TrainingSession) error
	DeleteTrainingSession(ctx context.Context, sessionID int64) error

	// SessionRecommendations returns the recommendations generated for one
	// training session; an empty slice means they are not ready yet.
	SessionRecommendations(ctx context.Context, sessionID, userID int64) ([]models.Recommendation, error)
	SavedRecommendations(ctx context.Context, userID int64) ([]models.Recommendation, error)

	NotificationPreferences(ctx context.Context, userID int64) (*models.NotificationPreferences, error)

	ProductCategories(ctx context.Context) ([]models.ProductCategory, error)
	ProductsByCategory(ctx context.Context, categoryID int64) ([]models.Product, error)
	ProductDetail(ctx context.Context, productID int64) (*models.ProductDetail, error)

	AddConsumption(ctx context.Context, userID, productID int64, quantity int) error
}
