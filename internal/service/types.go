// Package service provides the business logic layer for the jot application.
// It wraps the journal store, analysis, git sync and config packages,
// providing one API for the CLI, the TUI and the HTTP server.
package service

import (
	"context"
	"errors"
	"time"
)

// Common errors for the journal service
var (
	ErrEmptyContent     = errors.New("content cannot be empty")
	ErrUnknownType      = errors.New("unknown entry type")
	ErrInvalidIndex     = errors.New("invalid entry index")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrNoEntries        = errors.New("no entries found")
	ErrQueueFull        = errors.New("processing queue is full")
	ErrProcessorStopped = errors.New("processor is shutting down")
)

// Submission is a piece of free text waiting to be composed into a journal
type Submission struct {
	ID       string
	Type     string
	Content  string
	Received time.Time
}

// ComposeResult describes a journal update
type ComposeResult struct {
	Type       string
	Path       string
	DateHeader string
	Sections   int   // analysed sections written besides the raw input
	Synced     bool  // pushed to git
	SyncErr    error // set when git sync was attempted and failed
}

// Syncer records journal changes in version control
type Syncer interface {
	Sync(ctx context.Context, msg string) error
}

// Repository is a Syncer that must be initialised before use
type Repository interface {
	Syncer
	Init(ctx context.Context) error
}

// Composer turns a submission into a journal update
type Composer interface {
	Compose(ctx context.Context, sub Submission) (*ComposeResult, error)
}
