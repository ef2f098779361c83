package handlers

import (
	"context"

	"landing-api/internal/models"
)

// Store is the persistence surface the handlers depend on. *db.Store
// satisfies it; tests substitute an in-memory fake.
type Store interface {
	ListPosts(ctx context.Context) ([]models.BlogPost, error)
	GetPost(ctx context.Context, id string) (*models.BlogPost, error)
	CreatePost(ctx context.Context, title, content, excerpt, authorID string) (*models.BlogPost, error)
	UpdatePost(ctx context.Context, id, title, content, excerpt string) (*models.BlogPost, error)
	DeletePost(ctx context.Context, id string) (bool, error)

	CreateContactSubmission(ctx context.Context, name, email, message string) (*models.ContactSubmission, error)

	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpsertUserPassword(ctx context.Context, username, passwordHash string) (*models.User, error)

	Ping(ctx context.Context) error
	Counts(ctx context.Context) (users, blogPosts int, err error)
	Initialize(ctx context.Context, adminPasswordHash string) (adminCreated bool, postsCreated int, err error)
}
