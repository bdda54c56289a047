package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"mas-astro/nightwatch/internal/astro"
)

// WebhookPublisher delivers the digest through a Discord webhook URL, the
// original delivery path. Works without a gateway session, so webhook-only
// deployments can still post.
type WebhookPublisher struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
}

func NewWebhookPublisher(url string) *WebhookPublisher {
	return &WebhookPublisher{
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		// Webhooks allow ~30 req/min; one digest a day doesn't need more
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

type webhookEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type webhookEmbed struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Color       int                 `json:"color"`
	Fields      []webhookEmbedField `json:"fields"`
	Image       *struct {
		URL string `json:"url"`
	} `json:"image,omitempty"`
	Footer struct {
		Text string `json:"text"`
	} `json:"footer"`
	Timestamp string `json:"timestamp"`
}

type webhookPayload struct {
	Content string         `json:"content"`
	Embeds  []webhookEmbed `json:"embeds"`
}

// Publish posts the digest to the webhook.
func (p *WebhookPublisher) Publish(ctx context.Context, digest *astro.Digest) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	embed := webhookEmbed{
		Title:       digest.Title,
		Description: digest.Description,
		Color:       digest.Color,
		Timestamp:   digest.Timestamp.UTC().Format(time.RFC3339),
	}
	embed.Footer.Text = digest.FooterText
	for _, f := range digest.Fields {
		embed.Fields = append(embed.Fields, webhookEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	if digest.ImageURL != "" {
		embed.Image = &struct {
			URL string `json:"url"`
		}{URL: digest.ImageURL}
	}

	body, err := json.Marshal(webhookPayload{Content: digest.Content, Embeds: []webhookEmbed{embed}})
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook delivery returned status %d", resp.StatusCode)
	}
	return nil
}

// ChannelPublisher delivers the digest as a bot message to a channel, used
// when no webhook URL is configured.
type ChannelPublisher struct {
	session   *discordgo.Session
	channelID string
}

func NewChannelPublisher(session *discordgo.Session, channelID string) *ChannelPublisher {
	return &ChannelPublisher{session: session, channelID: channelID}
}

// Publish sends the digest to the configured channel.
func (p *ChannelPublisher) Publish(ctx context.Context, digest *astro.Digest) error {
	_, err := p.session.ChannelMessageSendComplex(p.channelID, &discordgo.MessageSend{
		Content: digest.Content,
		Embeds:  []*discordgo.MessageEmbed{digestToEmbed(digest)},
	})
	if err != nil {
		return fmt.Errorf("channel delivery failed: %w", err)
	}
	return nil
}

// digestToEmbed converts the delivery-agnostic digest into a discordgo embed.
func digestToEmbed(digest *astro.Digest) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       digest.Title,
		Description: digest.Description,
		Color:       digest.Color,
		Timestamp:   digest.Timestamp.UTC().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: digest.FooterText,
		},
	}
	for _, f := range digest.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	if digest.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: digest.ImageURL}
	}
	return embed
}
