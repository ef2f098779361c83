package db

import (
	"context"
	"fmt"
)

// AdminUsername is the single admin account the site ships with.
const AdminUsername = "admin"

type samplePost struct {
	Title   string
	Excerpt string
	Content string
}

func samplePosts() []samplePost {
	return []samplePost{
		{
			Title:   "Welcome to Our AI-Assisted Landing Page",
			Excerpt: "Discover how AI can transform your development workflow with our modern landing page solution.",
			Content: `# Welcome to Our AI-Assisted Landing Page

This is a sample blog post to demonstrate the blog functionality of our AI-assisted landing page.

## Features

- Full blog management system
- Contact form integration
- Single-admin authentication
- Simple JSON API for every page

## Getting Started

Sign in to the admin panel to manage your content, or browse the blog to see published posts.`,
		},
		{
			Title:   "Building Modern Web Applications",
			Excerpt: "Learn about the latest trends and best practices in modern web development.",
			Content: `# Building Modern Web Applications

In today's fast-paced digital world, creating modern web applications requires the right tools and methodologies.

## Best Practices

1. Component-based architecture
2. Type safety throughout the application
3. Responsive design principles
4. Performance optimization
5. Accessibility considerations

Start building amazing applications today!`,
		},
	}
}

// Initialize creates the admin user and the sample posts when no admin
// exists yet. It reports whether anything was created so the init-db
// endpoint can distinguish first-time setup from a no-op.
func (s *Store) Initialize(ctx context.Context, adminPasswordHash string) (adminCreated bool, postsCreated int, err error) {
	admin, err := s.GetUserByUsername(ctx, AdminUsername)
	if err != nil {
		return false, 0, err
	}
	if admin != nil {
		return false, 0, nil
	}

	admin, err = s.CreateUser(ctx, AdminUsername, adminPasswordHash)
	if err != nil {
		return false, 0, err
	}
	for _, p := range samplePosts() {
		if _, err := s.CreatePost(ctx, p.Title, p.Content, p.Excerpt, admin.ID); err != nil {
			return true, postsCreated, fmt.Errorf("seed post: %w", err)
		}
		postsCreated++
	}
	return true, postsCreated, nil
}
