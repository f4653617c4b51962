package notify

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

const pushoverAPIURL = "https://api.pushover.net/1/messages.json"

// PushoverSender delivers notifications through the Pushover service.
type PushoverSender struct {
	Token string
	User  string
}

// NewPushoverSender creates a sender with the given API credentials.
func NewPushoverSender(token, user string) *PushoverSender {
	return &PushoverSender{Token: token, User: user}
}

// Send pushes a single high-priority message.
func (p *PushoverSender) Send(title, message string) error {
	params := url.Values{}
	params.Set("token", p.Token)
	params.Set("user", p.User)
	params.Set("title", title)
	params.Set("message", message)
	params.Set("priority", "1")

	resp, err := http.PostForm(pushoverAPIURL, params)
	if err != nil {
		return fmt.Errorf("posting to pushover: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("pushover api error: status %s, body %s", resp.Status, string(body))
	}

	return nil
}

// LogSender writes notifications to the log. It is the fallback delivery
// channel when no push service is configured.
type LogSender struct {
	Log *slog.Logger
}

// Send logs the notification at info level.
func (l *LogSender) Send(title, message string) error {
	log := l.Log
	if log == nil {
		log = slog.Default()
	}
	log.Info("REMINDER", "title", title, "message", message)
	return nil
}
