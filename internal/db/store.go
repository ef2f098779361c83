package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"landing-api/internal/models"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) Ping(ctx context.Context) error {
	if s.pool == nil {
		return errors.New("db not initialized")
	}
	return s.pool.Ping(ctx)
}

// EnsureSchema creates the three tables if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s.pool == nil {
		return errors.New("db not initialized")
	}
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS blog_posts (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			excerpt TEXT NOT NULL,
			author_id TEXT NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS contact_submissions (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

const postColumns = `
	p.id,
	p.title,
	p.content,
	p.excerpt,
	p.author_id,
	p.created_at,
	p.updated_at,
	u.id,
	u.username,
	u.created_at
`

func scanPost(row pgx.Row) (*models.BlogPost, error) {
	var post models.BlogPost
	var author models.Author
	if err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Excerpt,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
		&author.ID,
		&author.Username,
		&author.CreatedAt,
	); err != nil {
		return nil, err
	}
	post.Author = &author
	return &post, nil
}

// ListPosts returns all posts, newest first, each with its author projection.
func (s *Store) ListPosts(ctx context.Context) ([]models.BlogPost, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}
	query := `
		SELECT ` + postColumns + `
		FROM blog_posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]models.BlogPost, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return posts, nil
}

// GetPost returns nil, nil when no post has the given id.
func (s *Store) GetPost(ctx context.Context, id string) (*models.BlogPost, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}
	query := `
		SELECT ` + postColumns + `
		FROM blog_posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`
	post, err := scanPost(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (s *Store) CreatePost(ctx context.Context, title, content, excerpt, authorID string) (*models.BlogPost, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}
	query := `
		WITH inserted AS (
			INSERT INTO blog_posts (id, title, content, excerpt, author_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, title, content, excerpt, author_id, created_at, updated_at
		)
		SELECT ` + postColumns + `
		FROM inserted p
		JOIN users u ON u.id = p.author_id
	`
	post, err := scanPost(s.pool.QueryRow(ctx, query, uuid.NewString(), title, content, excerpt, authorID))
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// UpdatePost returns nil, nil when the target post does not exist.
func (s *Store) UpdatePost(ctx context.Context, id, title, content, excerpt string) (*models.BlogPost, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}
	query := `
		WITH updated AS (
			UPDATE blog_posts
			SET title = $2, content = $3, excerpt = $4, updated_at = now()
			WHERE id = $1
			RETURNING id, title, content, excerpt, author_id, created_at, updated_at
		)
		SELECT ` + postColumns + `
		FROM updated p
		JOIN users u ON u.id = p.author_id
	`
	post, err := scanPost(s.pool.QueryRow(ctx, query, id, title, content, excerpt))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// DeletePost reports whether a row was actually removed.
func (s *Store) DeletePost(ctx context.Context, id string) (bool, error) {
	if s.pool == nil {
		return false, errors.New("db not initialized")
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) CreateContactSubmission(ctx context.Context, name, email, message string) (*models.ContactSubmission, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}
	const query = `
		INSERT INTO contact_submissions (id, name, email, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, message, created_at
	`
	var sub models.ContactSubmission
	err := s.pool.QueryRow(ctx, query, uuid.NewString(), name, email, message).Scan(
		&sub.ID,
		&sub.Name,
		&sub.Email,
		&sub.Message,
		&sub.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create contact submission: %w", err)
	}
	return &sub, nil
}

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}
	const query = `
		INSERT INTO users (id, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, password_hash, created_at
	`
	var user models.User
	err := s.pool.QueryRow(ctx, query, uuid.NewString(), username, passwordHash).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// GetUserByUsername returns nil, nil when the username is unknown.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}
	const query = `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`
	var user models.User
	err := s.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &user, nil
}

// UpsertUserPassword creates the user or replaces its password hash.
func (s *Store) UpsertUserPassword(ctx context.Context, username, passwordHash string) (*models.User, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}
	const query = `
		INSERT INTO users (id, username, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id, username, password_hash, created_at
	`
	var user models.User
	err := s.pool.QueryRow(ctx, query, uuid.NewString(), username, passwordHash).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert user password: %w", err)
	}
	return &user, nil
}

// Counts reports row counts for the health endpoint.
func (s *Store) Counts(ctx context.Context) (users, blogPosts int, err error) {
	if s.pool == nil {
		return 0, 0, errors.New("db not initialized")
	}
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&users); err != nil {
		return 0, 0, fmt.Errorf("count users: %w", err)
	}
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blog_posts`).Scan(&blogPosts); err != nil {
		return 0, 0, fmt.Errorf("count blog posts: %w", err)
	}
	return users, blogPosts, nil
}
