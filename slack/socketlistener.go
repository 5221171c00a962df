package slack

import (
	"log"
	"os"
	"sync/atomic"

	slacklib "github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/justmike1/tanuki/commands"
)

// EventHandler receives every inbound message event.
type EventHandler func(ev commands.Event)

// SocketListener connects to Slack via Socket Mode (outbound WebSocket) and
// feeds message events to a handler. No inbound URL configuration is needed —
// the app connects to Slack, not the other way around.
type SocketListener struct {
	smClient   *socketmode.Client
	handler    EventHandler
	debug      bool
	connected  atomic.Bool
	eventCount atomic.Int64
}

// NewSocketListener creates a Socket Mode listener.
// appToken is the Slack app-level token (xapp-...) with connections:write scope.
// botToken is the normal bot token (xoxb-...).
// Set env SOCKET_MODE_DEBUG=1 to enable verbose wire-level logging.
func NewSocketListener(appToken, botToken string, handler EventHandler) *SocketListener {
	debug := os.Getenv("SOCKET_MODE_DEBUG") == "1"

	apiOpts := []slacklib.Option{
		slacklib.OptionAppLevelToken(appToken),
	}
	if debug {
		apiOpts = append(apiOpts, slacklib.OptionDebug(true))
		apiOpts = append(apiOpts, slacklib.OptionLog(log.New(os.Stdout, "[slack-api] ", log.LstdFlags)))
	}

	api := slacklib.New(botToken, apiOpts...)

	smOpts := []socketmode.Option{}
	if debug {
		smOpts = append(smOpts, socketmode.OptionDebug(true))
		smOpts = append(smOpts, socketmode.OptionLog(log.New(os.Stdout, "[socket-wire] ", log.LstdFlags)))
	}

	return &SocketListener{
		smClient: socketmode.New(api, smOpts...),
		handler:  handler,
		debug:    debug,
	}
}

// Start connects to Slack and begins listening for events in a blocking loop.
// It reconnects automatically on disconnection.
func (sl *SocketListener) Start() {
	go sl.handleEvents()

	log.Printf("[socket-mode] connecting to Slack (debug=%v)...", sl.debug)
	if err := sl.smClient.Run(); err != nil {
		log.Printf("[socket-mode] fatal: %v", err)
	}
}

func (sl *SocketListener) handleEvents() {
	for evt := range sl.smClient.Events {
		sl.eventCount.Add(1)

		switch evt.Type {
		case socketmode.EventTypeConnecting:
			// Only log if we were previously connected (suppress initial spam).
			if sl.connected.Load() {
				log.Printf("[socket-mode] reconnecting...")
			}

		case socketmode.EventTypeConnected:
			wasConnected := sl.connected.Swap(true)
			if !wasConnected {
				log.Printf("[socket-mode] connected (events processed: %d)", sl.eventCount.Load())
			}

		case socketmode.EventTypeConnectionError:
			sl.connected.Store(false)
			log.Printf("[socket-mode] connection error, will retry...")

		case socketmode.EventTypeHello:
			log.Printf("[socket-mode] received hello from Slack")

		case socketmode.EventTypeEventsAPI:
			eventsAPIEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
			if !ok {
				log.Printf("[socket-mode] WARNING: EventsAPI event data is %T (expected slackevents.EventsAPIEvent), skipping",
					evt.Data)
				if evt.Request != nil {
					sl.smClient.Ack(*evt.Request)
				}
				continue
			}

			// Acknowledge the event immediately to prevent Slack retries.
			if evt.Request != nil {
				sl.smClient.Ack(*evt.Request)
			}

			sl.handleEventsAPI(eventsAPIEvent)

		default:
			log.Printf("[socket-mode] unhandled event type: %s (data type: %T)",
				evt.Type, evt.Data)
			// Acknowledge unknown event types to avoid retries.
			if evt.Request != nil {
				sl.smClient.Ack(*evt.Request)
			}
		}
	}
	log.Printf("[socket-mode] event channel closed — listener stopped")
}

func (sl *SocketListener) handleEventsAPI(event slackevents.EventsAPIEvent) {
	if event.Type != slackevents.CallbackEvent {
		log.Printf("[socket-mode] events-api: skipping non-callback event type %q", event.Type)
		return
	}

	innerData := event.InnerEvent.Data
	if innerData == nil {
		log.Printf("[socket-mode] events-api: inner event data is nil (inner type=%s)", event.InnerEvent.Type)
		return
	}

	switch ev := innerData.(type) {
	case *slackevents.MessageEvent:
		sl.handleMessage(ev)
	default:
		log.Printf("[socket-mode] events-api: unhandled inner event type %T (event type: %s)",
			innerData, event.InnerEvent.Type)
	}
}

// handleMessage hands one message event to the router in its own goroutine.
// Classification (direct vs. channel, mention gating, subtypes) is the
// router's job; the listener only skips other bots' messages to avoid loops.
func (sl *SocketListener) handleMessage(ev *slackevents.MessageEvent) {
	log.Printf("[socket-mode] message: channel=%s channel_type=%s user=%s sub_type=%q text=%q",
		ev.Channel, ev.ChannelType, ev.User, ev.SubType, truncate(ev.Text, 80))

	if ev.BotID != "" {
		return
	}

	go sl.handler(commands.Event{
		Type:        "message",
		SubType:     ev.SubType,
		Channel:     ev.Channel,
		ChannelType: ev.ChannelType,
		User:        ev.User,
		Text:        ev.Text,
	})
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
