package commands

import (
	"context"

	"github.com/justmike1/tanuki/gitlab"
	"github.com/justmike1/tanuki/render"
)

// CIProvider is the subset of the GitLab client the handlers use.
type CIProvider interface {
	ListJobs(ctx context.Context, projectID int, scope string) ([]gitlab.Job, error)
	JobTrace(ctx context.Context, projectID int, jobID string) (string, error)
	RetryJob(ctx context.Context, projectID int, jobID string) (*gitlab.Job, error)
	CreatePipeline(ctx context.Context, projectID int, ref string) (*gitlab.Pipeline, error)
}

// Notifier posts replies back into chat.
type Notifier interface {
	// PostCard broadcasts a card to a channel.
	PostCard(channelID string, card render.Card) error
	// PostEphemeralCard shows a card only to one user in a channel.
	PostEphemeralCard(channelID, userID string, card render.Card) error
	// PostEphemeral shows plain text only to one user in a channel.
	PostEphemeral(channelID, userID, text string) error
}
