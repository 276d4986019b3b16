package recognize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/livecap/livecap/internal/timeline"
	"go.uber.org/zap"
)

const defaultDeepgramURL = "wss://api.deepgram.com/v1/listen?model=nova-2&encoding=linear16&sample_rate=16000&channels=1&punctuate=true&interim_results=true"

// DeepgramConfig configures the hosted streaming recognizer.
type DeepgramConfig struct {
	APIKey string
	URL    string
	Logger *zap.Logger
}

// DeepgramEngine streams PCM audio to Deepgram over a websocket and maps its
// interim/final transcript messages onto updates.
type DeepgramEngine struct {
	cfg    DeepgramConfig
	logger *zap.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	cancel context.CancelFunc
	done   chan struct{}
}

func NewDeepgramEngine(cfg DeepgramConfig) *DeepgramEngine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeepgramEngine{cfg: cfg, logger: logger}
}

func (e *DeepgramEngine) Name() string { return "deepgram" }

func (e *DeepgramEngine) Start(ctx context.Context, audio <-chan []byte, consumer Consumer) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.conn != nil {
		return errors.New("deepgram engine already started")
	}
	if strings.TrimSpace(e.cfg.APIKey) == "" {
		return errors.New("deepgram engine requires an API key (set DEEPGRAM_API_KEY)")
	}

	endpoint := e.cfg.URL
	if endpoint == "" {
		endpoint = defaultDeepgramURL
	}

	header := http.Header{"Authorization": {fmt.Sprintf("Token %s", e.cfg.APIKey)}}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, header)
	if err != nil {
		return fmt.Errorf("dial deepgram: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.conn = conn
	e.cancel = cancel
	e.done = make(chan struct{})
	done := e.done

	go e.sendAudio(runCtx, conn, audio)
	go func() {
		defer close(done)
		e.readMessages(runCtx, conn, consumer)
	}()

	e.logger.Debug("deepgram engine started", zap.String("endpoint", endpoint))
	return nil
}

func (e *DeepgramEngine) Stop(ctx context.Context) error {
	e.mu.Lock()
	conn := e.conn
	cancel := e.cancel
	done := e.done
	e.conn = nil
	e.cancel = nil
	e.done = nil
	e.mu.Unlock()

	if conn == nil {
		return nil
	}

	deadline := time.Now().Add(2 * time.Second)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)

	if done != nil {
		select {
		case <-done:
		case <-time.After(time.Until(deadline)):
		}
	}

	cancel()
	return conn.Close()
}

func (e *DeepgramEngine) sendAudio(ctx context.Context, conn *websocket.Conn, audio <-chan []byte) {
	for {
		select {
		case <-ctx.Done():
			return
		case chunk, ok := <-audio:
			if !ok {
				return
			}
			if len(chunk) == 0 {
				continue
			}
			if err := conn.WriteMessage(websocket.BinaryMessage, chunk); err != nil {
				e.logger.Debug("deepgram write failed", zap.Error(err))
				return
			}
		}
	}
}

// deepgramMessage mirrors the transcript frames Deepgram pushes back.
type deepgramMessage struct {
	IsFinal bool `json:"is_final"`
	Channel struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"channel"`
}

func (e *DeepgramEngine) readMessages(ctx context.Context, conn *websocket.Conn, consumer Consumer) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return
			}
			e.logger.Warn("deepgram read failed", zap.Error(err))
			consumer.OnError(ErrNetwork)
			return
		}

		update, ok := parseDeepgramMessage(message)
		if !ok {
			continue
		}
		consumer.OnUpdate(update)
	}
}

func parseDeepgramMessage(message []byte) (timeline.Update, bool) {
	var parsed deepgramMessage
	if err := json.Unmarshal(message, &parsed); err != nil {
		return timeline.Update{}, false
	}
	if len(parsed.Channel.Alternatives) == 0 {
		return timeline.Update{}, false
	}

	return timeline.Update{
		Segments: []timeline.Segment{{
			Text:  parsed.Channel.Alternatives[0].Transcript,
			Final: parsed.IsFinal,
		}},
	}, true
}
