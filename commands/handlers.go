package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/justmike1/tanuki/render"
)

// traceTailLines is how many trailing trace lines a job card carries.
const traceTailLines = 5

// hello is the setup smoke test: a private greeting, no project, no
// authorization.
func (r *Router) hello(_ context.Context, ev Event, _ []string) error {
	return r.notifier.PostEphemeral(ev.Channel, ev.User, "Hey there")
}

// jobLast finds a project's most recent job, fetches its trace and broadcasts
// a card with the trimmed trace to the project's channel.
func (r *Router) jobLast(ctx context.Context, ev Event, params []string) error {
	if len(params) < 2 {
		return fmt.Errorf("usage: `job:last <project> <scope>`")
	}
	project, err := r.projects.Lookup(params[1])
	if err != nil {
		return err
	}

	scope := ""
	if len(params) > 2 {
		scope = params[2]
	}

	jobs, err := r.ci.ListJobs(ctx, project.ID, scope)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no jobs found for project %q", params[1])
	}
	lastJob := jobs[0]

	trace, err := r.ci.JobTrace(ctx, project.ID, strconv.Itoa(lastJob.ID))
	if err != nil {
		return err
	}

	card := render.Job(&lastJob)
	tail := sanitizeTrace(trace, traceTailLines)
	card.Fields = append(card.Fields, render.Field{
		Value: "```" + strings.Join(tail, "\n") + "```",
		Short: false,
	})

	return r.notifier.PostCard(project.Channel, card)
}

// jobRetry retries one job and replies privately with the new job's card.
func (r *Router) jobRetry(ctx context.Context, ev Event, params []string) error {
	if len(params) < 3 {
		return fmt.Errorf("usage: `job:retry <project> <job_id>`")
	}
	project, err := r.projects.Lookup(params[1])
	if err != nil {
		return err
	}

	job, err := r.ci.RetryJob(ctx, project.ID, params[2])
	if err != nil {
		return err
	}

	return r.notifier.PostEphemeralCard(ev.Channel, ev.User, render.Job(job))
}

// pipelineCreate triggers a pipeline on the given ref, defaulting to the
// project's configured branch, and replies privately with its card.
func (r *Router) pipelineCreate(ctx context.Context, ev Event, params []string) error {
	if len(params) < 2 {
		return fmt.Errorf("usage: `pipeline:create <project> <ref>`")
	}
	project, err := r.projects.Lookup(params[1])
	if err != nil {
		return err
	}

	ref := project.Ref
	if len(params) > 2 {
		ref = params[2]
	}

	pipeline, err := r.ci.CreatePipeline(ctx, project.ID, ref)
	if err != nil {
		return err
	}

	return r.notifier.PostEphemeralCard(ev.Channel, ev.User, render.Pipeline(pipeline))
}
