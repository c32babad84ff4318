package server

import (
	"context"
	"net"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"github.com/pantrylink/pantrylink/cmd/util"
	"github.com/pantrylink/pantrylink/pkg/errors"
	"github.com/pantrylink/pantrylink/pkg/proto/wearable"
	"github.com/pantrylink/pantrylink/pkg/version"

	_ "google.golang.org/grpc/encoding/gzip" // Install the gzip compressor
)

// queueSize bounds the number of undelivered events. Incoming messages are
// acknowledged as soon as they're queued, so the queue only fills if a
// handler stalls. Once full, new messages are rejected rather than queued,
// which keeps delivery at-most-once instead of buffering stale actions.
const queueSize = 64

// A Handler processes an event delivered by a peer. All handlers registered
// on one server run on a single dispatch goroutine, so the in-memory state
// they mutate needs no locking against other handlers.
type Handler func(sender string, path string, payload []byte)

// Config holds the callbacks invoked when peers deliver events.
type Config struct {
	// OnMessage is invoked for transient messages.
	OnMessage Handler

	// OnData is invoked for data-item updates.
	OnData Handler
}

type event struct {
	isData  bool
	sender  string
	path    string
	payload []byte
}

type server struct {
	cfg    Config
	events chan event
}

var errQueueFull = errors.New("event queue is full")

// Run starts the channel server and blocks serving connections.
func Run(lis net.Listener, cfg Config) error {
	grpcServer := grpc.NewServer()
	serverImpl := &server{
		cfg:    cfg,
		events: make(chan event, queueSize),
	}
	wearable.RegisterWearableServer(grpcServer, serverImpl)

	go func() {
		defer util.HandlePanic()
		serverImpl.dispatch()
	}()

	log.WithField("address", lis.Addr().String()).Info("Channel server is ready")
	if err := grpcServer.Serve(lis); err != nil {
		return errors.WithContext(err, "serve")
	}
	return nil
}

// dispatch delivers queued events to the handlers one at a time.
func (s *server) dispatch() {
	for ev := range s.events {
		handler := s.cfg.OnMessage
		if ev.isData {
			handler = s.cfg.OnData
		}
		if handler == nil {
			log.WithField("path", ev.path).Debug("No handler for event")
			continue
		}
		handler(ev.sender, ev.path, ev.payload)
	}
}

// enqueue adds the event to the dispatch queue without blocking the RPC.
func (s *server) enqueue(ev event) error {
	select {
	case s.events <- ev:
		return nil
	default:
		return errQueueFull
	}
}

func (s *server) SendMessage(ctx context.Context, req *wearable.SendMessageRequest) (
	*wearable.SendMessageResponse, error) {

	err := s.enqueue(event{
		sender:  req.GetSender(),
		path:    req.GetPath(),
		payload: req.GetPayload(),
	})
	return &wearable.SendMessageResponse{Error: errors.Marshal(err)}, nil
}

func (s *server) PutDataItem(ctx context.Context, req *wearable.PutDataItemRequest) (
	*wearable.PutDataItemResponse, error) {

	err := s.enqueue(event{
		isData:  true,
		sender:  req.GetSender(),
		path:    req.GetPath(),
		payload: req.GetPayload(),
	})
	return &wearable.PutDataItemResponse{Error: errors.Marshal(err)}, nil
}

func (s *server) GetVersion(ctx context.Context, _ *wearable.GetVersionRequest) (
	*wearable.GetVersionResponse, error) {

	return &wearable.GetVersionResponse{Version: version.Version}, nil
}
