package client

import (
	"context"

	"github.com/dmitrijs2005/photoshare/internal/client/models"
)

// Client is the auth/profile surface of the remote API.
type Client interface {
	Register(ctx context.Context, creds models.Credentials) (models.Account, error)
	// Login returns the access token issued for creds.
	Login(ctx context.Context, creds models.Credentials) (string, error)
	CreateProfile(ctx context.Context, nickName string) (models.Profile, error)
	// UpdateProfile sends nickName and, when img is non-nil, a new avatar.
	UpdateProfile(ctx context.Context, profile models.Profile, img *models.ProfileImage) (models.Profile, error)
	FetchMyProfile(ctx context.Context) (models.Profile, error)
	FetchAllProfiles(ctx context.Context) ([]models.Profile, error)
}

// FeedClient reads the post and comment collections.
type FeedClient interface {
	FetchAllPosts(ctx context.Context) ([]models.Post, error)
	FetchAllComments(ctx context.Context) ([]models.Comment, error)
}

// TokenLoader yields the persisted session token for authenticated calls.
type TokenLoader interface {
	Load(ctx context.Context) (string, error)
}
