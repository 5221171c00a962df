// Package render builds the color-coded cards posted back to chat from CI
// job and pipeline records.
package render

import (
	"fmt"
	"math"

	"github.com/justmike1/tanuki/gitlab"
)

const (
	colorSuccess  = "#2eb67d"
	colorFailed   = "#e01e5a"
	colorCanceled = "#ecb22e"
	colorDefault  = "#36c5f0"

	footer     = "GitLab API"
	footerIcon = "https://about.gitlab.com/images/press/logo/png/gitlab-icon-rgb.png"
)

// Field is one titled value on a card. Short fields render side by side.
type Field struct {
	Title string
	Value string
	Short bool
}

// Card is the provider-agnostic reply format. Immutable once built; the chat
// transport converts it to its native attachment type.
type Card struct {
	Color            string
	Title            string
	TitleLink        string
	Fields           []Field
	Footer           string
	FooterIcon       string
	TimestampSeconds int64
}

// Job renders a job record as a card.
func Job(job *gitlab.Job) Card {
	return Card{
		Color:     StatusColor(job.Status),
		Title:     fmt.Sprintf("Job - %d", job.ID),
		TitleLink: job.WebURL,
		Fields: []Field{
			{Title: "Name", Value: job.Name, Short: true},
			{Title: "Stage", Value: job.Stage, Short: true},
			{Title: "Duration", Value: fmt.Sprintf("%ds", int64(math.Round(job.Duration))), Short: true},
			{Title: "Status", Value: job.Status, Short: true},
			{Title: "Last Commit", Value: fmt.Sprintf("#%s - %s", job.Commit.ShortID, job.Commit.Title), Short: false},
		},
		Footer:           footer,
		FooterIcon:       footerIcon,
		TimestampSeconds: job.CreatedAt.Unix(),
	}
}

// Pipeline renders a pipeline record as a card.
func Pipeline(pipeline *gitlab.Pipeline) Card {
	return Card{
		Color:     StatusColor(pipeline.Status),
		Title:     fmt.Sprintf("Pipeline - %d", pipeline.ID),
		TitleLink: pipeline.WebURL,
		Fields: []Field{
			{Title: "Ref", Value: pipeline.Ref, Short: true},
			{Title: "Status", Value: pipeline.Status, Short: true},
		},
		Footer:           footer,
		FooterIcon:       footerIcon,
		TimestampSeconds: pipeline.CreatedAt.Unix(),
	}
}

// StatusColor maps a CI status to its card color. Unrecognized statuses
// (running, pending, ...) fall back to the default blue.
func StatusColor(status string) string {
	switch status {
	case gitlab.StatusSuccess:
		return colorSuccess
	case gitlab.StatusFailed:
		return colorFailed
	case gitlab.StatusCanceled:
		return colorCanceled
	default:
		return colorDefault
	}
}
