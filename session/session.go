// Package session implements the reliable request/response layer the
// OmniLogic controller expects on top of lossy UDP: per-request
// acknowledgements with verbatim retransmission, duplicate-ack suppression,
// and collection of fragmented responses through the wire assembler.
//
// All exchanges serialize through a single dispatcher goroutine. The
// controller answers strictly one request at a time, and interleaving
// requests on the socket produces interleaved fragments that cannot be told
// apart, so the session keeps exactly one exchange in flight.
package session

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/poollink/go-omnilogic/internal/pool"
	"github.com/poollink/go-omnilogic/logger"
	"github.com/poollink/go-omnilogic/wire"
)

// recvChanSize bounds buffered inbound frames between dispatcher reads.
// The largest observed fragmented response is well under this.
const recvChanSize = 128

// maxDatagramSize is the receive buffer size. Controller datagrams are far
// smaller, bounded by the UDP path MTU.
const maxDatagramSize = 65536

// Response is one decoded controller response: the payload already
// reassembled, inflated and stripped of framing artifacts.
type Response struct {
	// ID is the message ID of the first data frame of the response.
	ID uint32
	// Type is the message type carried by the response. For fragmented
	// responses it is the type announced by the lead message.
	Type wire.Type
	// Body is the decoded XML body.
	Body []byte
}

type sendResult struct {
	resp *Response
	err  error
}

type sendRequest struct {
	msg       *wire.Message
	replyChan chan *sendResult
}

// Session is one request/response session with a controller. Create it with
// NewSession, call Open before use and Close when done.
//
// Session is safe for concurrent use; concurrent Call invocations queue and
// run one at a time.
type Session struct {
	pctx      context.Context
	ctx       context.Context
	ctxCancel context.CancelFunc
	cfg       *Config
	logger    logger.Logger

	connMutex sync.RWMutex
	conn      *net.UDPConn

	idGen *msgIDGenerator

	// senderMsgChan is read by the dispatcher loop; Call writes one
	// sendRequest per exchange. It is created once and never closed.
	senderMsgChan chan *sendRequest
	recvChan      chan *wire.Message

	opened   atomic.Bool
	shutdown atomic.Bool
	wg       sync.WaitGroup

	metrics Metrics
}

// NewSession creates a session for the controller described by cfg. The
// context is the parent for the session lifetime; cancelling it closes the
// session.
func NewSession(ctx context.Context, cfg *Config) *Session {
	if ctx == nil {
		ctx = context.Background()
	}

	return &Session{
		pctx:          ctx,
		cfg:           cfg,
		logger:        cfg.Logger().With("host", cfg.Host(), "port", cfg.Port()),
		idGen:         newMsgIDGenerator(),
		senderMsgChan: make(chan *sendRequest),
		recvChan:      make(chan *wire.Message, recvChanSize),
	}
}

// Open dials the controller and starts the receive and dispatcher loops.
// Opening an already open session is a no-op.
func (s *Session) Open() error {
	if !s.opened.CompareAndSwap(false, true) {
		return nil
	}

	addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", s.cfg.Host(), s.cfg.Port()))
	if err != nil {
		s.opened.Store(false)
		return fmt.Errorf("%w: resolve: %w", ErrConnection, err)
	}

	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		s.opened.Store(false)
		return fmt.Errorf("%w: dial: %w", ErrConnection, err)
	}

	s.connMutex.Lock()
	s.conn = conn
	s.connMutex.Unlock()

	s.ctx, s.ctxCancel = context.WithCancel(s.pctx)

	s.wg.Add(2)
	go s.receiveLoop()
	go s.dispatchLoop()

	s.logger.Debug("session opened")

	return nil
}

// Close shuts the session down and releases the socket. Close is idempotent
// and safe to call concurrently with Call; pending exchanges fail with
// ErrClosed.
func (s *Session) Close() error {
	if !s.shutdown.CompareAndSwap(false, true) {
		return nil
	}
	if !s.opened.Load() {
		return nil
	}

	s.ctxCancel()

	s.connMutex.Lock()
	conn := s.conn
	s.conn = nil
	s.connMutex.Unlock()

	var err error
	if conn != nil {
		err = conn.Close()
	}

	s.wg.Wait()
	s.logger.Debug("session closed")

	return err
}

// Metrics returns the session metric counters.
func (s *Session) Metrics() *Metrics {
	return &s.metrics
}

// NextID returns a fresh message ID from the session generator, used by
// callers that synthesize messages themselves.
func (s *Session) NextID() uint32 {
	return s.idGen.genID()
}

// Call sends one request and returns the decoded response. The request is
// retransmitted verbatim while the controller stays silent, up to the
// configured attempt budget. Requests of an acknowledgement type return a
// nil response immediately after transmission.
//
// The context bounds the whole exchange on top of the configured timeouts.
func (s *Session) Call(ctx context.Context, msgType wire.Type, body []byte) (*Response, error) {
	if !s.opened.Load() {
		return nil, ErrNotOpened
	}
	if s.shutdown.Load() {
		return nil, ErrClosed
	}

	msg := wire.NewMessage(s.idGen.genID(), msgType, body)
	req := &sendRequest{
		msg:       msg,
		replyChan: make(chan *sendResult, 1),
	}

	select {
	case s.senderMsgChan <- req:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: queue request: %w", ErrTimeout, ctx.Err())
	case <-s.ctx.Done():
		return nil, ErrClosed
	}

	select {
	case result := <-req.replyChan:
		return result.resp, result.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
	case <-s.ctx.Done():
		return nil, ErrClosed
	}
}

// dispatchLoop serializes exchanges. It is the only reader of recvChan, so
// frame ordering within an exchange is deterministic.
func (s *Session) dispatchLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case req := <-s.senderMsgChan:
			resp, err := s.exchange(req.msg)
			req.replyChan <- &sendResult{resp: resp, err: err}
		}
	}
}

// exchange runs one full request/response cycle.
func (s *Session) exchange(msg *wire.Message) (*Response, error) {
	s.drainStale()

	first, err := s.transmit(msg)
	if err != nil {
		return nil, err
	}
	if msg.Type.IsAck() {
		return nil, nil
	}

	firstData, err := s.awaitFirstData(first)
	if err != nil {
		return nil, err
	}

	// Ack the data frame before any further processing; the controller
	// retransmits until it sees the ack.
	s.sendAck(firstData.ID)

	if firstData.Type == wire.TypeMSPLeadMessage {
		return s.collectFragments(firstData)
	}

	body, err := firstData.Body()
	if err != nil {
		return nil, err
	}

	return &Response{ID: firstData.ID, Type: firstData.Type, Body: body}, nil
}

// transmit writes the request and waits for the controller acknowledgement,
// retransmitting the identical datagram on silence. A lead message or
// telemetry update received while waiting satisfies the wait; the frame is
// returned so the receive phase does not lose it. Chatty controllers skip
// the ack under load, and waiting out the full budget there would deadlock
// the exchange.
func (s *Session) transmit(msg *wire.Message) (*wire.Message, error) {
	raw := msg.Encode()

	for attempt := 1; ; attempt++ {
		if err := s.write(raw); err != nil {
			return nil, err
		}
		if msg.Type.IsAck() {
			return nil, nil
		}

		timer := pool.GetTimer(s.cfg.AckTimeout())
		frame, acked, err := s.waitAck(msg.ID, timer)
		pool.PutTimer(timer)

		if err == nil && (acked || frame != nil) {
			return frame, nil
		}
		if err != nil {
			return nil, err
		}

		if attempt >= s.cfg.SendAttempts() {
			s.metrics.incTimeoutCount()
			return nil, fmt.Errorf("%w after %d attempts", ErrAckTimeout, attempt)
		}

		s.metrics.incRetransmitCount()
		s.logger.Debug("retransmitting request",
			"msgID", msg.ID, "msgType", msg.Type.String(), "attempt", attempt+1)
	}
}

// waitAck waits for one ack period. It returns acked=true on an ack frame
// echoing the request's message ID, a non-nil frame when a data push
// satisfied the wait, and (nil, false, nil) on timeout.
func (s *Session) waitAck(reqID uint32, timer *time.Timer) (*wire.Message, bool, error) {
	for {
		select {
		case m := <-s.recvChan:
			if m.Type.IsAck() {
				// An ack for a previous exchange can still land here
				// after drainStale; it must not satisfy this wait.
				if m.ID != reqID {
					s.logger.Debug("discarding stale ack", "msgID", m.ID, "want", reqID)
					continue
				}
				return nil, true, nil
			}
			if m.Type == wire.TypeMSPLeadMessage || m.Type == wire.TypeMSPTelemetryUpdate {
				return m, false, nil
			}
			s.logger.Debug("unexpected frame while waiting for ack", "msgType", m.Type.String())
		case <-timer.C:
			return nil, false, nil
		case <-s.ctx.Done():
			return nil, false, ErrClosed
		}
	}
}

// awaitFirstData returns the first data frame of the response, skipping
// duplicate acks left over from retransmitted requests.
func (s *Session) awaitFirstData(carried *wire.Message) (*wire.Message, error) {
	if carried != nil {
		return carried, nil
	}

	timer := pool.GetTimer(s.cfg.ResponseTimeout())
	defer pool.PutTimer(timer)

	for {
		select {
		case m := <-s.recvChan:
			if m.Type.IsAck() {
				s.logger.Debug("skipping duplicate ack")
				continue
			}
			return m, nil
		case <-timer.C:
			s.metrics.incTimeoutCount()
			return nil, ErrResponseTimeout
		case <-s.ctx.Done():
			return nil, ErrClosed
		}
	}
}

// collectFragments gathers the block messages announced by the lead frame,
// acking each one, and reassembles the response body.
func (s *Session) collectFragments(lead *wire.Message) (*Response, error) {
	leadMsg, err := wire.ParseLeadMessage(lead.RawBody())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("collecting fragmented response",
		"blocks", leadMsg.MsgBlockCount, "size", leadMsg.MsgSize)

	asm := wire.NewAssembler(leadMsg)

	total := pool.GetTimer(s.cfg.FragmentWait())
	defer pool.PutTimer(total)

	for !asm.Complete() {
		idle := pool.GetTimer(s.cfg.fragmentIdle)

		select {
		case m := <-s.recvChan:
			pool.PutTimer(idle)
			if m.Type != wire.TypeMSPBlockMessage {
				s.logger.Debug("non-block frame during fragment collection", "msgType", m.Type.String())
				continue
			}
			s.sendAck(m.ID)
			s.metrics.incFragmentRecvCount()
			asm.Add(m)
		case <-idle.C:
			pool.PutTimer(idle)
			s.metrics.incTimeoutCount()
			return nil, fmt.Errorf("%w: got %d of %d fragments",
				ErrFragmentTimeout, asm.Received(), leadMsg.MsgBlockCount)
		case <-total.C:
			pool.PutTimer(idle)
			s.metrics.incTimeoutCount()
			return nil, fmt.Errorf("%w: got %d of %d fragments after %v",
				ErrFragmentTimeout, asm.Received(), leadMsg.MsgBlockCount, s.cfg.FragmentWait())
		case <-s.ctx.Done():
			pool.PutTimer(idle)
			return nil, ErrClosed
		}
	}

	body, err := asm.Assemble(lead.Compressed())
	if err != nil {
		return nil, err
	}

	respType := wire.Type(leadMsg.Type)
	if leadMsg.Type == 0 {
		respType = wire.TypeMSPLeadMessage
	}

	return &Response{ID: lead.ID, Type: respType, Body: body}, nil
}

// sendAck transmits an acknowledgement carrying the originating message ID.
// Send failures are logged and swallowed; the controller retransmits the
// frame and the duplicate handling absorbs it.
func (s *Session) sendAck(msgID uint32) {
	ack := wire.NewMessage(msgID, wire.TypeXMLAck, wire.AckBody())
	if err := s.write(ack.Encode()); err != nil {
		s.logger.Warn("failed to send ack", "msgID", msgID, "error", err)
	}
}

// drainStale discards frames left in the receive buffer by a previous
// exchange, such as late fragment retransmissions.
func (s *Session) drainStale() {
	for {
		select {
		case m := <-s.recvChan:
			s.logger.Debug("dropping stale frame", "msgID", m.ID, "msgType", m.Type.String())
		default:
			return
		}
	}
}

func (s *Session) write(raw []byte) error {
	s.connMutex.RLock()
	conn := s.conn
	s.connMutex.RUnlock()

	if conn == nil {
		return ErrClosed
	}

	n, err := conn.Write(raw)
	if err != nil {
		if isConnClosedError(err) {
			return ErrClosed
		}
		return fmt.Errorf("%w: write: %w", ErrConnection, err)
	}

	s.metrics.incMsgSendCount()
	s.metrics.addBytesSent(n)

	return nil
}

// receiveLoop reads datagrams off the socket, decodes them and hands them to
// the dispatcher. Undecodable datagrams are dropped with a warning; a full
// buffer drops the frame rather than blocking the socket.
func (s *Session) receiveLoop() {
	defer s.wg.Done()

	buf := make([]byte, maxDatagramSize)
	for {
		s.connMutex.RLock()
		conn := s.conn
		s.connMutex.RUnlock()
		if conn == nil {
			return
		}

		n, err := conn.Read(buf)
		if err != nil {
			if isConnClosedError(err) || s.ctx.Err() != nil {
				return
			}
			s.logger.Warn("socket read failed", "error", err)
			continue
		}

		msg, err := wire.Decode(buf[:n])
		if err != nil {
			s.logger.Warn("dropping undecodable datagram", "bytes", n, "error", err)
			continue
		}

		s.metrics.incMsgRecvCount()
		s.metrics.addBytesRecv(n)

		select {
		case s.recvChan <- msg:
		case <-s.ctx.Done():
			return
		default:
			s.logger.Warn("receive buffer full, dropping frame",
				"msgID", msg.ID, "msgType", msg.Type.String())
		}
	}
}

func isConnClosedError(err error) bool {
	return errors.Is(err, net.ErrClosed) || strings.Contains(err.Error(), "use of closed network connection")
}
