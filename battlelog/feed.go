package battlelog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const feedBuffer = 64

// FeedSource reads JSON events from a websocket. A reader goroutine hands
// events to Poll through a buffered channel.
type FeedSource struct {
	conn   *websocket.Conn
	cancel context.CancelFunc
	events chan Event
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// DialFeed connects to url and starts reading. The feed stops when ctx is
// cancelled or Close is called.
func DialFeed(ctx context.Context, url string) (*FeedSource, error) {
	ctx, cancel := context.WithCancel(ctx)
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("battlelog: dial %s: %w", url, err)
	}
	s := &FeedSource{
		conn:   conn,
		cancel: cancel,
		events: make(chan Event, feedBuffer),
		done:   make(chan struct{}),
	}
	go s.read(ctx)
	return s, nil
}

func (s *FeedSource) read(ctx context.Context) {
	defer close(s.done)
	for {
		var ev Event
		if err := wsjson.Read(ctx, s.conn, &ev); err != nil {
			s.setErr(err)
			return
		}
		if err := ev.Validate(); err != nil {
			log.Printf("battlelog: skip feed event: %v", err)
			continue
		}
		select {
		case s.events <- ev:
		case <-ctx.Done():
			s.setErr(ctx.Err())
			return
		}
	}
}

func (s *FeedSource) setErr(err error) {
	if websocket.CloseStatus(err) == websocket.StatusNormalClosure || errors.Is(err, context.Canceled) {
		err = nil
	}
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *FeedSource) Poll() (Event, bool) {
	select {
	case ev := <-s.events:
		return ev, true
	default:
		return Event{}, false
	}
}

// Done is closed once the reader stops.
func (s *FeedSource) Done() <-chan struct{} { return s.done }

// Err returns the error that stopped the reader. A normal close is nil.
func (s *FeedSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *FeedSource) Close() error {
	s.cancel()
	<-s.done
	_ = s.conn.CloseNow()
	return nil
}
