package slack

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/slack-go/slack"

	"github.com/justmike1/tanuki/render"
)

// Client wraps the Slack Web API for the replies this bot sends: channel
// broadcasts and ephemeral (one-user) messages, plain or carrying a card.
type Client struct {
	api *slack.Client
}

func NewClient(botToken string) *Client {
	return &Client{api: slack.New(botToken)}
}

func (c *Client) PostMessage(channelID, text string) error {
	_, _, err := c.api.PostMessage(channelID, slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("failed to post message: %w", err)
	}
	return nil
}

func (c *Client) PostCard(channelID string, card render.Card) error {
	_, _, err := c.api.PostMessage(channelID, slack.MsgOptionAttachments(attachment(card)))
	if err != nil {
		return fmt.Errorf("failed to post card: %w", err)
	}
	return nil
}

func (c *Client) PostEphemeralCard(channelID, userID string, card render.Card) error {
	_, err := c.api.PostEphemeral(channelID, userID, slack.MsgOptionAttachments(attachment(card)))
	if err != nil {
		return fmt.Errorf("failed to post ephemeral card: %w", err)
	}
	return nil
}

func (c *Client) PostEphemeral(channelID, userID, text string) error {
	_, err := c.api.PostEphemeral(channelID, userID, slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("failed to post ephemeral message: %w", err)
	}
	return nil
}

// attachment converts the provider-agnostic card into Slack's native form.
func attachment(card render.Card) slack.Attachment {
	fields := make([]slack.AttachmentField, len(card.Fields))
	for i, f := range card.Fields {
		fields[i] = slack.AttachmentField{
			Title: f.Title,
			Value: f.Value,
			Short: f.Short,
		}
	}

	return slack.Attachment{
		Color:      card.Color,
		Title:      card.Title,
		TitleLink:  card.TitleLink,
		MarkdownIn: []string{"fields", "text"},
		Fields:     fields,
		Footer:     card.Footer,
		FooterIcon: card.FooterIcon,
		Ts:         json.Number(strconv.FormatInt(card.TimestampSeconds, 10)),
	}
}
