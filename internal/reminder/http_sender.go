package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const httpSendTimeout = 5 * time.Second

// HTTPSender posts messages to a running server's /send_message endpoint.
type HTTPSender struct {
	client *resty.Client
}

func NewHTTPSender(apiBase string) *HTTPSender {
	return &HTTPSender{
		client: resty.New().SetBaseURL(apiBase).SetTimeout(httpSendTimeout),
	}
}

type sendMessageResponse struct {
	Response string `json:"response"`
}

func (h *HTTPSender) HandleMessage(ctx context.Context, user, text string) (string, error) {
	var out sendMessageResponse
	res, err := h.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"user": user, "text": text}).
		SetResult(&out).
		Post("/send_message")
	if err != nil {
		return "", fmt.Errorf("send_message request failed: %w", err)
	}
	if !res.IsSuccess() {
		return "", fmt.Errorf("send_message returned status %d: %s", res.StatusCode(), res.String())
	}
	return out.Response, nil
}
