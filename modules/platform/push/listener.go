package push

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/qiyaolin/labops/modules/platform/session"
)

// Handler receives the resource name of a server-side change hint
// ("requests", "schedules", "equipment", "tasks", "items").
type Handler func(resource string)

// changeHint is the wire format of one push message.
type changeHint struct {
	Resource string `json:"resource"`
}

const reconnectDelay = 5 * time.Second

// Listener subscribes to the backend's change feed and forwards each hint
// to the handler. The handler is expected to reload the named collection -
// the push channel never carries data, only invalidation hints, so the
// reconcile-via-reload discipline holds.
type Listener struct {
	wsURL   string
	sess    *session.Session
	log     *zap.Logger
	handler Handler
}

// New creates a listener against the API base URL (scheme://host[:port]).
func New(baseURL string, sess *session.Session, log *zap.Logger, handler Handler) *Listener {
	if log == nil {
		log = zap.NewNop()
	}
	return &Listener{
		wsURL:   wsEndpoint(baseURL),
		sess:    sess,
		log:     log,
		handler: handler,
	}
}

func wsEndpoint(baseURL string) string {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = u.Path + "/api/ws/updates/"
	return u.String()
}

// Run connects and consumes hints until ctx is cancelled. Connection loss
// is not fatal: the listener logs, waits, and reconnects - a missed hint
// only delays a reload until the next user-triggered refresh.
func (l *Listener) Run(ctx context.Context) {
	if l.wsURL == "" {
		l.log.Warn("push listener disabled: invalid base URL")
		return
	}
	for {
		if ctx.Err() != nil {
			return
		}
		if !l.sess.HasToken() {
			// Same short-circuit rule as the resource client
			if !sleepCtx(ctx, reconnectDelay) {
				return
			}
			continue
		}
		l.consume(ctx)
		if !sleepCtx(ctx, reconnectDelay) {
			return
		}
	}
}

func (l *Listener) consume(ctx context.Context) {
	header := http.Header{}
	header.Set("Authorization", "Token "+l.sess.BearerToken())

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, l.wsURL, header)
	if err != nil {
		l.log.Debug("push connect failed", zap.Error(err))
		return
	}
	defer conn.Close()
	l.log.Info("push feed connected", zap.String("url", l.wsURL))

	// Unblock ReadJSON when the context is cancelled
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var hint changeHint
		if err := conn.ReadJSON(&hint); err != nil {
			if ctx.Err() == nil {
				l.log.Debug("push feed dropped", zap.Error(err))
			}
			return
		}
		if hint.Resource == "" {
			continue
		}
		l.handler(hint.Resource)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
