package connection

import (
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/saeidalz13/battleship-backend/internal/logs"
)

const (
	maxWriteWsRetries uint8 = 2
	backOffFactor     uint8 = 2
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	reconnectionAfterAbnormalClosure(conn *websocket.Conn)
	handleReadFromConnErr(err error, retries uint8) uint8
	writeToConnWithRetry(msg interface{}, msgType uint8) error
	onConnErr(err error) uint8
}

// Session is one websocket client. The connection can be swapped by a
// reconnect while the session goroutine keeps running.
type Session struct {
	id        string
	createdAt time.Time

	// unix nanos of the last successful read, write or reconnect
	lastActiveAt atomic.Int64

	mu   sync.Mutex
	conn *websocket.Conn

	// Buffered so a reconnect never blocks on a session that is not
	// waiting for it
	reconnectionSignalChan chan struct{}
}

var _ ConnectionHandler = (*Session)(nil)

func NewSession(id string, conn *websocket.Conn) *Session {
	s := &Session{
		id:                     id,
		conn:                   conn,
		reconnectionSignalChan: make(chan struct{}, 1),
		createdAt:              time.Now(),
	}
	s.markActive(s.createdAt)
	return s
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) LastActiveAt() time.Time {
	return time.Unix(0, s.lastActiveAt.Load())
}

func (s *Session) markActive(t time.Time) {
	s.lastActiveAt.Store(t.UnixNano())
}

func (s *Session) Conn() *websocket.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

func (s *Session) remoteAddr() string {
	conn := s.Conn()
	if conn == nil {
		return ""
	}
	return conn.RemoteAddr().String()
}

func (s *Session) onConnErr(err error) uint8 {
	fields := []zap.Field{zap.String("sessionId", s.id), zap.Error(err)}

	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		logs.Warn("timeout error", fields...)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		logs.Warn("high server load/traffic error", fields...)
		return ConnLoopRetry
	}

	// Happens if a mobile client goes to background
	if websocket.IsCloseError(err, websocket.CloseAbnormalClosure) {
		logs.Info("abnormal closure error", fields...)
		return ConnLoopAbnormalClosureRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		logs.Info("close error", fields...)
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		logs.Error("critical error", fields...)
		return ConnLoopBreak
	}

	/*
		The client might not be ours. Break so invalid payloads
		(binary data, bad UTF-8, huge frames) do not keep the server busy.
	*/
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		logs.Warn("non-critical error", fields...)
		return ConnLoopBreak
	}

	if errors.Is(err, net.ErrClosed) {
		logs.Debug("connection closed locally", fields...)
		return ConnLoopBreak
	}

	logs.Error("unexpected error", fields...)
	return ConnLoopBreak
}

// Writes to the connection of that session. It also
// handles the abnormal or other types of errors of
// writing to a websocket connection.
func (s *Session) writeToConnWithRetry(msg interface{}, msgType uint8) error {
	var retries uint8

writeJsonLoop:
	for {
		conn := s.Conn()
		var err error

		switch msgType {
		case MessageTypeJSON:
			err = conn.WriteJSON(msg)

		case MessageTypeBytes:
			respBytes, ok := msg.([]byte)
			if !ok {
				return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
			}
			err = conn.WriteMessage(websocket.TextMessage, respBytes)

		default:
			return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write with retry")
		}

		if err == nil {
			s.markActive(time.Now())
			return nil
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries < maxWriteWsRetries {
				retries++
				logs.Warn("writing to ws failed; retrying",
					zap.String("remoteAddr", s.remoteAddr()),
					zap.Uint8("retry", retries),
				)
				time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
				continue writeJsonLoop
			}
			logs.Error("max retries reached for writing to ws", zap.String("remoteAddr", s.remoteAddr()), zap.Error(err))
			return NewConnErr(ConnLoopBreak).AddDesc(err.Error())

		case ConnLoopAbnormalClosureRetry:
			return NewConnErr(ConnLoopAbnormalClosureRetry).AddDesc(err.Error())

		default:
			return NewConnErr(ConnLoopBreak).AddDesc("breaking writeJsonLoop due to: " + err.Error())
		}
	}
}

// Handles the errors that occur when reading from the ws connection.
// ConnLoopContinue means the read should be tried again.
func (s *Session) handleReadFromConnErr(err error, retries uint8) uint8 {
	switch s.onConnErr(err) {
	case ConnLoopAbnormalClosureRetry:
		return ConnLoopAbnormalClosureRetry

	case ConnLoopRetry:
		if retries < maxWriteWsRetries {
			logs.Warn("failed to read from ws conn; retrying",
				zap.String("remoteAddr", s.remoteAddr()),
				zap.Uint8("retry", retries),
			)
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
			return ConnLoopContinue
		}
		return ConnLoopBreak

	default:
		logs.Info("break ws conn loop", zap.String("remoteAddr", s.remoteAddr()), zap.Error(err))
		return ConnLoopBreak
	}
}

// Swaps in the new connection and wakes up a session waiting for it.
// The old connection is closed so a blocked read on it returns.
func (s *Session) reconnectionAfterAbnormalClosure(conn *websocket.Conn) {
	s.mu.Lock()
	old := s.conn
	s.conn = conn
	s.mu.Unlock()
	s.markActive(time.Now())

	if old != nil && old != conn {
		_ = old.Close()
	}

	select {
	case s.reconnectionSignalChan <- struct{}{}:
	default:
	}
}

// Close closes the current connection. A blocked read on it returns.
func (s *Session) Close() {
	if conn := s.Conn(); conn != nil {
		_ = conn.Close()
	}
}
