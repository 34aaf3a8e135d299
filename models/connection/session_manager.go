package connection

import (
	"context"
	"encoding/base64"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	cerr "github.com/saeidalz13/battleship-backend/internal/error"
	"github.com/saeidalz13/battleship-backend/internal/logs"
)

const (
	defaultCleanupInterval = time.Minute * 20
	defaultGracePeriod     = time.Minute * 2
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	CleanupPeriodically(ctx context.Context)

	FindSession(sessionId string) (*Session, error)
	TerminateSession(session *Session)
	ReconnectSession(sessionId string, conn *websocket.Conn) error
	HandleAbnormalClosureSession(session *Session) error
	CountSessions() int

	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	gracePeriod     time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

type SessionManagerOption func(*BattleshipSessionManager)

func WithCleanupInterval(d time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.cleanupInterval = d
	}
}

// WithGracePeriod sets how long a session waits for its client to
// reconnect after an abnormal closure.
func WithGracePeriod(d time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.gracePeriod = d
	}
}

func NewBattleshipSessionManager(opts ...SessionManagerOption) *BattleshipSessionManager {
	initMapSize := 10

	bsm := &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: defaultCleanupInterval,
		gracePeriod:     defaultGracePeriod,
	}
	for _, opt := range opts {
		opt(bsm)
	}
	return bsm
}

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionIdNotFound(sessionId)
	}

	if session == nil {
		return nil, cerr.ErrSessionIsNil(sessionId)
	}

	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(session *Session) {
	session.Close()

	bsm.mu.Lock()
	delete(bsm.sessions, session.id)
	bsm.mu.Unlock()
}

func (bsm *BattleshipSessionManager) ReconnectSession(sessionId string, conn *websocket.Conn) error {
	session, err := bsm.FindSession(sessionId)
	if err != nil {
		return err
	}

	session.reconnectionAfterAbnormalClosure(conn)
	logs.Info("session reconnected", zap.String("sessionId", sessionId), zap.String("remoteAddr", conn.RemoteAddr().String()))
	return nil
}

func (bsm *BattleshipSessionManager) CountSessions() int {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()
	return len(bsm.sessions)
}

// To ensure that there is no dangling connections, sessions idle
// for longer than the cleanup interval are closed and removed.
func (bsm *BattleshipSessionManager) CleanupPeriodically(ctx context.Context) {
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bsm.cleanupStale(time.Now())
		}
	}
}

func (bsm *BattleshipSessionManager) cleanupStale(now time.Time) int {
	bsm.mu.Lock()
	defer bsm.mu.Unlock()

	removed := 0
	for id, session := range bsm.sessions {
		if now.Sub(session.LastActiveAt()) > bsm.cleanupInterval {
			session.Close()
			delete(bsm.sessions, id)
			removed++
			logs.Info("removed stale session", zap.String("sessionId", id))
		}
	}
	return removed
}

// This function takes care of abnormal closures. They happen when a
// mobile client goes to background or a browser tab loses network.
// The session waits for a reconnect for the grace period.
func (bsm *BattleshipSessionManager) HandleAbnormalClosureSession(s *Session) error {
	timer := time.NewTimer(bsm.gracePeriod)
	defer timer.Stop()

	select {
	case <-timer.C:
		logs.Info("grace period is over", zap.String("sessionId", s.id))
		return NewConnErr(ConnLoopBreak).AddDesc("grace period is over for session: " + s.id)

	case <-s.reconnectionSignalChan:
		logs.Info("player reconnected", zap.String("sessionId", s.id))
		return nil
	}
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	for {
		err := session.writeToConnWithRetry(msg, msgType)
		if err == nil {
			return nil
		}

		code, _ := ConnErrCode(err)
		if code != ConnLoopAbnormalClosureRetry {
			return err
		}
		if err := bsm.HandleAbnormalClosureSession(session); err != nil {
			return err
		}
		// write again on the new connection
	}
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		conn := session.Conn()
		messageType, payload, err := conn.ReadMessage()
		if err == nil {
			session.markActive(time.Now())
			return messageType, payload, nil
		}

		// A reconnect replaced the connection under the read
		if session.Conn() != conn {
			retries = 0
			continue
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		case ConnLoopAbnormalClosureRetry:
			if err := bsm.HandleAbnormalClosureSession(session); err != nil {
				return -1, nil, err
			}
			retries = 0

		default:
			return -1, nil, NewConnErr(ConnLoopBreak).AddDesc(err.Error())
		}
	}
}
