package speech_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/juniorlingo/english-agent/internal/speech"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText(t *testing.T) {
	assert.Empty(t, speech.SplitText("", 10))
	assert.Empty(t, speech.SplitText("  \n\t ", 10))
	assert.Equal(t, []string{"Hello there."}, speech.SplitText("  Hello   there.  ", 100))
	assert.Equal(t, []string{"one two", "three four", "five"}, speech.SplitText("one two three four five", 10))
	assert.Equal(t, []string{"abcd", "efgh", "ij k"}, speech.SplitText("abcdefghij k", 4))

	long := strings.Repeat("practice makes perfect ", 40)
	for _, chunk := range speech.SplitText(long, speech.MaxChunkLength) {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), speech.MaxChunkLength)
		assert.NotEmpty(t, chunk)
	}
}

func TestSplitTextCountsRunes(t *testing.T) {
	chunks := speech.SplitText("ação ação", 4)
	assert.Equal(t, []string{"ação", "ação"}, chunks)
}

func TestGoogleTTSSynthesize(t *testing.T) {
	var (
		mu      sync.Mutex
		queries []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate_tts", r.URL.Path)
		assert.Equal(t, "en", r.URL.Query().Get("tl"))
		assert.Equal(t, "tw-ob", r.URL.Query().Get("client"))

		mu.Lock()
		queries = append(queries, r.URL.Query().Get("q"))
		mu.Unlock()

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("[" + r.URL.Query().Get("idx") + "]"))
	}))
	defer server.Close()

	tts := speech.NewGoogleTTS(server.URL)
	text := strings.Repeat("word ", 30)

	audio, err := tts.Synthesize(context.Background(), text, "en")
	require.NoError(t, err)

	assert.Equal(t, speech.SplitText(text, speech.MaxChunkLength), queries)
	assert.Equal(t, "[0][1]", string(audio))
}

func TestGoogleTTSDefaultsLanguage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en", r.URL.Query().Get("tl"))
		w.Write([]byte("mp3"))
	}))
	defer server.Close()

	audio, err := speech.NewGoogleTTS(server.URL).Synthesize(context.Background(), "hi", "")
	require.NoError(t, err)
	assert.Equal(t, "mp3", string(audio))
}

func TestGoogleTTSErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	tts := speech.NewGoogleTTS(server.URL)

	_, err := tts.Synthesize(context.Background(), "Good morning", "en")
	assert.ErrorContains(t, err, "429")

	_, err = tts.Synthesize(context.Background(), "   ", "en")
	assert.ErrorIs(t, err, speech.ErrEmptyText)
}
