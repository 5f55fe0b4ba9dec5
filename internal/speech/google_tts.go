package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
)

// MaxChunkLength is the longest text, in characters, the translate_tts
// endpoint accepts in one request.
const MaxChunkLength = 100

var ErrEmptyText = errors.New("no text to synthesize")

type Synthesizer interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}

// GoogleTTS fetches MP3 speech from the Google Translate TTS endpoint.
type GoogleTTS struct {
	client *resty.Client
}

func NewGoogleTTS(baseURL string) *GoogleTTS {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36").
		SetHeader("Referer", "http://translate.google.com/")

	return &GoogleTTS{client: client}
}

func (g *GoogleTTS) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	chunks := SplitText(text, MaxChunkLength)
	if len(chunks) == 0 {
		return nil, ErrEmptyText
	}
	if language == "" {
		language = "en"
	}

	var audio bytes.Buffer
	for i, chunk := range chunks {
		res, err := g.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"ie":      "UTF-8",
				"q":       chunk,
				"tl":      language,
				"client":  "tw-ob",
				"total":   strconv.Itoa(len(chunks)),
				"idx":     strconv.Itoa(i),
				"textlen": strconv.Itoa(utf8.RuneCountInString(chunk)),
			}).
			Get("/translate_tts")
		if err != nil {
			return nil, fmt.Errorf("tts request failed: %w", err)
		}
		if !res.IsSuccess() {
			return nil, fmt.Errorf("tts request returned status %d: %s", res.StatusCode(), res.String())
		}
		if len(res.Body()) == 0 {
			return nil, fmt.Errorf("tts returned no audio for chunk %d", i)
		}
		audio.Write(res.Body())
	}

	return audio.Bytes(), nil
}

// SplitText breaks text into chunks of at most max characters, cutting at
// whitespace. A single word longer than max is cut mid-word.
func SplitText(text string, max int) []string {
	var (
		chunks  []string
		current strings.Builder
		length  int
	)

	flush := func() {
		if length > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			length = 0
		}
	}

	for _, word := range strings.Fields(text) {
		for utf8.RuneCountInString(word) > max {
			flush()
			runes := []rune(word)
			chunks = append(chunks, string(runes[:max]))
			word = string(runes[max:])
		}

		wordLen := utf8.RuneCountInString(word)
		if length > 0 && length+1+wordLen > max {
			flush()
		}
		if length > 0 {
			current.WriteByte(' ')
			length++
		}
		current.WriteString(word)
		length += wordLen
	}
	flush()

	return chunks
}
