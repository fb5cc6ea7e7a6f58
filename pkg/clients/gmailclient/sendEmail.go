package gmailclient

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
)

// EmailInterval is the minimum gap between two sends
const EmailInterval = 3 * time.Second

// SendEmail sends a plain text email, throttled to respect Gmail API rate limits
func (c *Client) SendEmail(to, subject, body string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if wait := EmailInterval - time.Since(c.lastSent); !c.lastSent.IsZero() && wait > 0 {
		time.Sleep(wait)
	}

	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(BuildMessage(c.sender, to, subject, body))),
	}

	if _, err := c.service.Users.Messages.Send("me", message).Context(c.ctx).Do(); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.lastSent = time.Now()

	return nil
}

// BuildMessage renders an RFC 2822 plain text message
func BuildMessage(from, to, subject, body string) string {
	var b strings.Builder
	if from != "" {
		fmt.Fprintf(&b, "From: %s\r\n", from)
	}
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}
