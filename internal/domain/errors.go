package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrEmptyRepoName   = errors.New("repo name cannot be empty")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrUnknownWorkMode = errors.New("unknown work mode")
	ErrNoRepoPath      = errors.New("repository path does not exist")
)
