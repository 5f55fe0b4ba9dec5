package core

import (
	"context"
	"errors"
	"fmt"
)

var ErrMissingCredential = errors.New("reply generator credential not configured")

// Reply is the outcome of one generator call: either text, or the reason
// there is none.
type Reply struct {
	Text string
	Err  error
}

func Replied(text string) Reply {
	return Reply{Text: text}
}

func Failed(err error) Reply {
	return Reply{Err: err}
}

func (r Reply) OK() bool {
	return r.Err == nil
}

type ReplyGenerator interface {
	Generate(ctx context.Context, text string) Reply
}

// FallbackGenerator answers without any external call. It never fails.
type FallbackGenerator struct{}

func (FallbackGenerator) Generate(_ context.Context, text string) Reply {
	return Replied(FallbackReply(text))
}

func FallbackReply(text string) string {
	return fmt.Sprintf("English teacher (fallback): I read: '%s'. Try to write short sentences. (Enable Gemini for smarter replies.)", text)
}
