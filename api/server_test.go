package api

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"github.com/saeidalz13/battleship-backend/db/sqlc"
	"github.com/saeidalz13/battleship-backend/internal/config"
	mb "github.com/saeidalz13/battleship-backend/models/battleship"
	mc "github.com/saeidalz13/battleship-backend/models/connection"
)

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	server := NewServer(mc.NewBattleshipSessionManager(), mb.NewBattleshipGameManager())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status: %d\tgot: %d", http.StatusOK, w.Code)
	}
}

func TestStats(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	gm := mb.NewBattleshipGameManager(mb.WithSeed(3))
	if _, err := gm.CreateGame(mb.DefaultRules()); err != nil {
		t.Fatal(err)
	}
	sm := mc.NewBattleshipSessionManager()
	sm.GenerateNewSession(nil)

	ipnet := net.IPNet{IP: net.ParseIP("10.1.1.1").To4(), Mask: net.CIDRMask(32, 32)}
	server := NewServer(sm, gm, WithAnalytics(sqlc.NewAnalyticsManager(sqlc.New(db), ipnet)))

	mock.ExpectQuery(regexp.QuoteMeta("FROM game_server_analytics")).
		WillReturnRows(sqlmock.NewRows([]string{"server_ip", "games_created", "player_wins", "computer_wins"}).
			AddRow("10.1.1.1/32", 5, 2, 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status: %d\tgot: %d", http.StatusOK, w.Code)
	}

	var resp statsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ActiveGames != 1 || resp.ActiveSessions != 1 {
		t.Fatalf("unexpected counters: %+v", resp)
	}
	if resp.Analytics == nil || resp.Analytics.GamesCreated != 5 || resp.Analytics.PlayerWins != 2 {
		t.Fatalf("unexpected analytics: %+v", resp.Analytics)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStatsWithoutAnalytics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	server := NewServer(mc.NewBattleshipSessionManager(), mb.NewBattleshipGameManager())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	server.Handler().ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if _, prs := body["analytics"]; prs {
		t.Fatalf("analytics must be omitted without a database\tgot: %v", body)
	}
}

func TestServerDefaultPort(t *testing.T) {
	server := NewServer(mc.NewBattleshipSessionManager(), mb.NewBattleshipGameManager())
	if expected := fmt.Sprintf("0.0.0.0:%d", config.DefaultPort); server.Addr() != expected {
		t.Fatalf("expected addr: %s\tgot: %s", expected, server.Addr())
	}
}

func TestServerOptions(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("invalid stage must panic")
		}
	}()
	NewServer(mc.NewBattleshipSessionManager(), mb.NewBattleshipGameManager(), WithStage("staging"))
}
