package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	mb "github.com/saeidalz13/battleship-backend/models/battleship"
	mc "github.com/saeidalz13/battleship-backend/models/connection"
)

type testClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func dialTestServer(t *testing.T, server *Server, query string) *testClient {
	t.Helper()

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/battleship" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return &testClient{t: t, conn: conn}
}

func (c *testClient) send(msg interface{}) {
	c.t.Helper()
	if err := c.conn.WriteJSON(msg); err != nil {
		c.t.Fatal(err)
	}
}

// expect reads the next message, checks its code and decodes it.
func expect[T any](c *testClient, code uint8) mc.Message[T] {
	c.t.Helper()

	_ = c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, payload, err := c.conn.ReadMessage()
	if err != nil {
		c.t.Fatal(err)
	}

	var msg mc.Message[T]
	if err := json.Unmarshal(payload, &msg); err != nil {
		c.t.Fatal(err)
	}
	if msg.Code != code {
		c.t.Fatalf("expected code: %d\tgot: %d (%s)", code, msg.Code, payload)
	}
	return msg
}

func TestPlayGameOverWebsocket(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gm := mb.NewBattleshipGameManager(mb.WithSeed(21))
	sm := mc.NewBattleshipSessionManager()
	server := NewServer(sm, gm)
	defer server.Shutdown(context.Background())

	c := dialTestServer(t, server, "")
	sessionMsg := expect[mc.RespSessionId](c, mc.CodeSessionID)
	if sessionMsg.Payload.SessionID == "" {
		t.Fatal("expected a session id")
	}

	// nothing to attack yet
	c.send(mc.NewMessage[mc.ReqAttack](mc.CodeAttack))
	expect[mc.NoPayload](c, mc.CodeInvalidSignal)

	c.send(map[string]any{"payload": map[string]any{}})
	expect[mc.NoPayload](c, mc.CodeSignalAbsent)

	c.send(mc.NewMessage[mc.NoPayload](99))
	expect[mc.NoPayload](c, mc.CodeInvalidSignal)

	c.send(mc.NewMessage[mc.ReqCreateGame](mc.CodeCreateGame))
	created := expect[mc.RespCreateGame](c, mc.CodeCreateGame)
	if created.Error != nil || created.Payload.GridSize != mb.DefaultGridSize {
		t.Fatalf("unexpected create game response: %+v", created)
	}

	placeShip := mc.NewMessage[mc.ReqPlaceShip](mc.CodePlaceShip)
	placeShip.AddPayload(mc.ReqPlaceShip{Length: 3, Row: 0, Col: 0, Orientation: uint8(mb.OrientationHorizontal)})
	c.send(placeShip)
	placed := expect[mc.RespPlaceShip](c, mc.CodePlaceShip)
	if placed.Error != nil || len(placed.Payload.PendingFleet) != 6 {
		t.Fatalf("unexpected place ship response: %+v", placed)
	}

	// touches the first ship diagonally
	placeShip.AddPayload(mc.ReqPlaceShip{Length: 2, Row: 1, Col: 1, Orientation: uint8(mb.OrientationHorizontal)})
	c.send(placeShip)
	if tooClose := expect[mc.RespPlaceShip](c, mc.CodePlaceShip); tooClose.Error == nil {
		t.Fatal("expected too close error")
	}

	c.send(mc.NewMessage[mc.NoPayload](mc.CodeReady))
	if notReady := expect[mc.NoPayload](c, mc.CodeReady); notReady.Error == nil {
		t.Fatal("expected fleet incomplete error")
	}

	c.send(mc.NewMessage[mc.NoPayload](mc.CodePlaceFleetRandom))
	fleet := expect[mc.RespPlaceFleet](c, mc.CodePlaceFleetRandom)
	if fleet.Error != nil || len(fleet.Payload.Ships) != 6 || len(fleet.Payload.PendingFleet) != 0 {
		t.Fatalf("unexpected random fleet response: %+v", fleet)
	}

	game, err := gm.FetchGame(created.Payload.GameUuid)
	if err != nil {
		t.Fatal(err)
	}
	computerGrid := game.Computer().Grid()
	ships := computerGrid.Ships()

	var water mb.Coordinates
findWater:
	for row := 0; row < computerGrid.Size(); row++ {
		for col := 0; col < computerGrid.Size(); col++ {
			if computerGrid.ShipAt(mb.NewCoordinates(row, col)) == nil {
				water = mb.NewCoordinates(row, col)
				break findWater
			}
		}
	}

	c.send(mc.NewMessage[mc.NoPayload](mc.CodeReady))
	expect[mc.NoPayload](c, mc.CodeReady)
	expect[mc.NoPayload](c, mc.CodeStartGame)

	attack := func(row, col int) {
		msg := mc.NewMessage[mc.ReqAttack](mc.CodeAttack)
		msg.AddPayload(mc.ReqAttack{Row: row, Col: col})
		c.send(msg)
	}

	attack(10, 0)
	if oob := expect[mc.RespAttack](c, mc.CodeAttack); oob.Error == nil {
		t.Fatal("expected out of bounds error")
	}

	c.send(mc.NewMessage[mc.NoPayload](mc.CodeCreateGame))
	expect[mc.NoPayload](c, mc.CodeInvalidSignal)

	// a miss hands the turn to the computer until it misses too
	attack(water.Row, water.Col)
	miss := expect[mc.RespAttack](c, mc.CodeAttack)
	if miss.Payload.Outcome != mb.ShotMiss.String() || miss.Payload.IsTurn {
		t.Fatalf("unexpected miss response: %+v", miss.Payload)
	}
	for {
		opponent := expect[mc.RespAttack](c, mc.CodeOpponentAttack)
		if opponent.Payload.Outcome == mb.ShotMiss.String() {
			if !opponent.Payload.IsTurn {
				t.Fatal("computer miss must give the turn back")
			}
			break
		}
	}

	for i, ship := range ships {
		for j, cell := range ship.Cells() {
			attack(cell.Row, cell.Col)
			hit := expect[mc.RespAttack](c, mc.CodeAttack)
			if hit.Error != nil || !hit.Payload.IsTurn {
				t.Fatalf("unexpected attack response: %+v", hit)
			}

			if j == ship.Length()-1 {
				if hit.Payload.Outcome != mb.ShotSunk.String() || len(hit.Payload.SunkShipCells) != ship.Length() {
					t.Fatalf("expected sunk ship\tgot: %+v", hit.Payload)
				}
				if hit.Payload.LiveShipsComputer != len(ships)-i-1 {
					t.Fatalf("expected live ships: %d\tgot: %d", len(ships)-i-1, hit.Payload.LiveShipsComputer)
				}
			} else if hit.Payload.Outcome != mb.ShotHit.String() {
				t.Fatalf("expected hit\tgot: %+v", hit.Payload)
			}

			if i == 0 && j == 0 {
				attack(cell.Row, cell.Col)
				if again := expect[mc.RespAttack](c, mc.CodeAttack); again.Error == nil {
					t.Fatal("expected already shot error")
				}
			}
		}
	}

	endGame := expect[mc.RespEndGame](c, mc.CodeEndGame)
	fleetCells := 0
	for _, ship := range ships {
		fleetCells += ship.Length()
	}
	if endGame.Payload.PlayerMatchStatus != mb.PlayerMatchStatusWon {
		t.Fatalf("expected status: %d\tgot: %d", mb.PlayerMatchStatusWon, endGame.Payload.PlayerMatchStatus)
	}
	if endGame.Payload.Hits != fleetCells || endGame.Payload.ShotsFired != fleetCells+1 {
		t.Fatalf("unexpected end game stats: %+v", endGame.Payload)
	}

	c.send(mc.NewMessage[mc.NoPayload](mc.CodeRematch))
	rematch := expect[mc.RespCreateGame](c, mc.CodeRematch)
	if rematch.Error != nil || rematch.Payload.GameUuid == created.Payload.GameUuid {
		t.Fatalf("expected a new game\tgot: %+v", rematch)
	}
	if gm.CountGames() != 1 {
		t.Fatalf("expected the finished game to be dropped, games: %d", gm.CountGames())
	}
}

func TestCreateGameWithGridSize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	server := NewServer(mc.NewBattleshipSessionManager(), mb.NewBattleshipGameManager(mb.WithSeed(4)))
	defer server.Shutdown(context.Background())

	c := dialTestServer(t, server, "")
	expect[mc.RespSessionId](c, mc.CodeSessionID)

	size := 12
	msg := mc.NewMessage[mc.ReqCreateGame](mc.CodeCreateGame)
	msg.AddPayload(mc.ReqCreateGame{GridSize: &size})
	c.send(msg)
	if created := expect[mc.RespCreateGame](c, mc.CodeCreateGame); created.Payload.GridSize != 12 {
		t.Fatalf("expected grid size: 12\tgot: %d", created.Payload.GridSize)
	}

	size = 1
	msg.AddPayload(mc.ReqCreateGame{GridSize: &size})
	c.send(msg)
	if invalid := expect[mc.RespCreateGame](c, mc.CodeCreateGame); invalid.Error == nil {
		t.Fatal("fleet does not fit on a 1x1 grid")
	}
}

func TestReconnectWithUnknownSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	server := NewServer(mc.NewBattleshipSessionManager(), mb.NewBattleshipGameManager())
	defer server.Shutdown(context.Background())

	c := dialTestServer(t, server, "?"+URLQuerySessionIDKeyword+"=unknown")
	expect[mc.NoPayload](c, mc.CodeReceivedInvalidSessionID)
}
