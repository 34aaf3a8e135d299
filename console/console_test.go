package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"testing"

	mb "github.com/saeidalz13/battleship-backend/models/battleship"
)

func TestRender(t *testing.T) {
	grid := mb.NewGrid(3)
	ship, err := mb.NewShip(1, mb.NewCoordinates(0, 0), mb.OrientationVertical)
	if err != nil {
		t.Fatal(err)
	}
	if err := grid.AddShip(ship); err != nil {
		t.Fatal(err)
	}
	if _, err := grid.Attack(mb.NewCoordinates(2, 2)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		board    Board
		expected [][]string
	}{
		{
			name:  "own board",
			board: grid,
			expected: [][]string{
				{"1", "2", "3"},
				{"1", SymbolShip, SymbolAdjacency, SymbolEmpty},
				{"2", SymbolAdjacency, SymbolAdjacency, SymbolEmpty},
				{"3", SymbolEmpty, SymbolEmpty, SymbolMiss},
			},
		},
		{
			name:  "opponent view",
			board: mb.NewAttackView(grid),
			expected: [][]string{
				{"1", "2", "3"},
				{"1", SymbolEmpty, SymbolEmpty, SymbolEmpty},
				{"2", SymbolEmpty, SymbolEmpty, SymbolEmpty},
				{"3", SymbolEmpty, SymbolEmpty, SymbolMiss},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(&buf, test.board); err != nil {
				t.Fatal(err)
			}

			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			if len(lines) != len(test.expected) {
				t.Fatalf("expected %d lines\tgot: %q", len(test.expected), buf.String())
			}
			for i, line := range lines {
				if got := strings.Fields(line); strings.Join(got, " ") != strings.Join(test.expected[i], " ") {
					t.Fatalf("line %d expected: %v\tgot: %v", i, test.expected[i], got)
				}
			}
		})
	}
}

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		line     string
		expected mb.Coordinates
		isValid  bool
	}{
		{line: "1 1", expected: mb.NewCoordinates(0, 0), isValid: true},
		{line: "10,3", expected: mb.NewCoordinates(9, 2), isValid: true},
		{line: "  4   7 ", expected: mb.NewCoordinates(3, 6), isValid: true},
		{line: "0 0", expected: mb.NewCoordinates(-1, -1), isValid: true},
		{line: "a b"},
		{line: "3"},
		{line: "1 2 3"},
		{line: ""},
	}

	for _, test := range tests {
		c, err := parseCoordinates(test.line)
		if test.isValid != (err == nil) {
			t.Fatalf("%q: expected valid: %v\tgot error: %v", test.line, test.isValid, err)
		}
		if test.isValid && c != test.expected {
			t.Fatalf("%q: expected: %+v\tgot: %+v", test.line, test.expected, c)
		}
	}
}

func TestAskHonoursContext(t *testing.T) {
	in, _ := io.Pipe()
	p := NewPrompter(in, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Ask(ctx, "> "); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected error: %v\tgot: %v", context.Canceled, err)
	}
}

func TestRunClosedInput(t *testing.T) {
	c := New(strings.NewReader(""), io.Discard)
	if err := c.Run(context.Background()); !errors.Is(err, io.EOF) {
		t.Fatalf("expected error: %v\tgot: %v", io.EOF, err)
	}
}

func shotsAtFleet(game *mb.Game) []string {
	lines := make([]string, 0)
	for _, ship := range game.Computer().Grid().Ships() {
		for _, cell := range ship.Cells() {
			lines = append(lines, fmt.Sprintf("%d %d", cell.Row+1, cell.Col+1))
		}
	}
	return lines
}

func TestRunScriptedGames(t *testing.T) {
	rules := mb.Rules{GridSize: 4, Fleet: []int{2, 1}}

	// same seed, same computer fleets
	mirror := rand.New(rand.NewSource(5))
	first, err := mb.NewGame(rules, mirror)
	if err != nil {
		t.Fatal(err)
	}
	second, err := mb.NewGame(rules, mirror)
	if err != nil {
		t.Fatal(err)
	}

	script := []string{
		"n",
		"4 4", "1", // off the board
		"1 1", "1",
		"1 2", // overlap
		"2 1", // too close
		"4 4",
		"x y",
		"9 9",
	}
	script = append(script, shotsAtFleet(first)...)
	script = append(script, "maybe", "y", "y")
	script = append(script, shotsAtFleet(second)...)
	script = append(script, "n")

	var out bytes.Buffer
	c := New(strings.NewReader(strings.Join(script, "\n")+"\n"), &out,
		WithRules(rules),
		WithRand(rand.New(rand.NewSource(5))),
	)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v\noutput:\n%s", err, out.String())
	}

	output := out.String()
	for _, expected := range []string{
		"Welcome to Battleship!",
		"out of game grid bound",
		"overlaps another ship",
		"too close to another ship",
		msgInvalidCoordinates,
		"(9, 9) is off the board",
		"Please answer y or n.",
		"Thanks for playing!",
	} {
		if !strings.Contains(output, expected) {
			t.Fatalf("expected output to contain %q\noutput:\n%s", expected, output)
		}
	}
	if won := strings.Count(output, "Congratulations! You won"); won != 2 {
		t.Fatalf("expected 2 won games\tgot: %d\noutput:\n%s", won, output)
	}
	if strings.Contains(output, "Computer shoots") {
		t.Fatal("computer must never shoot when the player never misses")
	}
	// length 1 ship takes no orientation
	if n := strings.Count(output, "Orientation (0 - vertical, 1 - horizontal)"); n != 2 {
		t.Fatalf("expected 2 orientation prompts\tgot: %d", n)
	}
}
