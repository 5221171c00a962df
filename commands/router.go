package commands

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/justmike1/tanuki/config"
)

// Event is the transport-free form of an inbound chat message.
type Event struct {
	Type        string
	SubType     string
	Channel     string
	ChannelType string
	User        string
	Text        string
}

// mentionPattern matches a leading "<@USERID>" mention token.
var mentionPattern = regexp.MustCompile(`^<@([^>]+)>`)

const helpText = "\n\n`@Tanuki <command>`\n\n" +
	"`hello`\n" +
	"`job:last <project> <scope>`\n" +
	"`job:retry <project> <job_id>`\n" +
	"`pipeline:create <project> <ref>`"

// Router is the top-level entry point for inbound chat events. Direct
// messages run the bootstrap handshake; channel messages mentioning the bot
// are tokenized, authorized and dispatched through the fixed command table.
type Router struct {
	notifier Notifier
	ci       CIProvider
	projects config.Projects
	identity *config.BotIdentity
	handlers map[string]handlerFunc
}

func NewRouter(notifier Notifier, ci CIProvider, projects config.Projects, identity *config.BotIdentity) *Router {
	r := &Router{
		notifier: notifier,
		ci:       ci,
		projects: projects,
		identity: identity,
	}
	r.handlers = r.registry()
	return r
}

// Handle processes one chat event. Every dispatch failure is rendered as an
// ephemeral help reply; nothing here ever takes the process down.
func (r *Router) Handle(ev Event) {
	if ev.Type != "message" {
		return
	}
	if ev.SubType != "" && ev.SubType != "bot_message" {
		return
	}

	if isDirectMessage(ev) {
		r.bootstrap(ev)
		return
	}

	botUserID := r.identity.UserID()
	if botUserID == "" {
		return
	}
	mention := "<@" + botUserID + ">"
	if !strings.HasPrefix(ev.Text, mention) {
		return
	}

	params := strings.Fields(strings.TrimPrefix(ev.Text, mention))
	if err := r.dispatch(context.Background(), ev, params); err != nil {
		log.Printf("[router] command failed: channel=%s user=%s err=%v", ev.Channel, ev.User, err)
		r.replyHelp(ev, err)
	}
}

// dispatch authorizes and runs one command. Authorization happens before verb
// resolution: whenever a second token is present it must name a registered
// project the requesting user belongs to, or nothing else runs.
func (r *Router) dispatch(ctx context.Context, ev Event, params []string) error {
	if len(params) == 0 {
		return &UnknownCommandError{Verb: ""}
	}

	if len(params) >= 2 {
		if _, err := authorize(r.projects, params[1], ev.User); err != nil {
			return err
		}
	}

	handler, err := r.resolve(params[0])
	if err != nil {
		return err
	}
	return handler(ctx, ev, params)
}

// bootstrap records the bot's own identity from a direct message containing a
// leading mention. Direct messages never reach command dispatch.
func (r *Router) bootstrap(ev Event) {
	match := mentionPattern.FindStringSubmatch(ev.Text)
	if match == nil {
		return
	}

	userID := match[1]
	log.Printf("[router] bootstrap: recording bot user id %s", userID)
	if err := r.identity.Set(userID); err != nil {
		// Outside the reply path; log and carry on with the in-memory value.
		log.Printf("[router] bootstrap: %v", err)
	}
}

func (r *Router) replyHelp(ev Event, cause error) {
	text := "No such luck - " + cause.Error() + helpText
	if err := r.notifier.PostEphemeral(ev.Channel, ev.User, text); err != nil {
		log.Printf("[router] failed to post help reply: %v", err)
	}
}

func isDirectMessage(ev Event) bool {
	return ev.ChannelType == "im" || strings.HasPrefix(ev.Channel, "D")
}
