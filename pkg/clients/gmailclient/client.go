package gmailclient

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Client sends mail through the Gmail API, one message at a time
type Client struct {
	service *gmail.Service
	ctx     context.Context
	sender  string

	mu       sync.Mutex
	lastSent time.Time
}

// NewClient creates a Gmail client that calls the API through httpClient,
// which must carry a token granted the gmail.send scope.
// sender, when set, is used as the From header.
func NewClient(ctx context.Context, httpClient *http.Client, sender string) (*Client, error) {
	service, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &Client{service: service, ctx: ctx, sender: sender}, nil
}
