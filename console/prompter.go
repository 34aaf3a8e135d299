package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	mb "github.com/saeidalz13/battleship-backend/models/battleship"
)

const msgInvalidCoordinates = "Invalid input. Enter two numbers: row and column."

// Prompter asks questions line by line. Input is read on a separate
// goroutine so a pending question can be abandoned through ctx.
type Prompter struct {
	out   io.Writer
	lines chan string
	err   error
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		out:   out,
		lines: make(chan string),
	}

	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			p.lines <- scanner.Text()
		}
		p.err = scanner.Err()
		close(p.lines)
	}()
	return p
}

func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Prompter) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Ask prints the prompt and returns the next trimmed line. Closed input
// is io.EOF.
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			if p.err != nil {
				return "", p.err
			}
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// AskCoordinates reads "row col" counted from 1 and keeps asking until
// the line holds two integers. Range is not checked here; the grid
// reports out of bound positions.
func (p *Prompter) AskCoordinates(ctx context.Context, prompt string) (mb.Coordinates, error) {
	for {
		line, err := p.Ask(ctx, prompt)
		if err != nil {
			return mb.Coordinates{}, err
		}

		c, err := parseCoordinates(line)
		if err != nil {
			p.Println(msgInvalidCoordinates)
			continue
		}
		return c, nil
	}
}

func parseCoordinates(line string) (mb.Coordinates, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) != 2 {
		return mb.Coordinates{}, errors.New("expected two numbers")
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return mb.Coordinates{}, err
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return mb.Coordinates{}, err
	}
	return mb.NewCoordinates(row-1, col-1), nil
}

func (p *Prompter) AskOrientation(ctx context.Context) (mb.Orientation, error) {
	for {
		line, err := p.Ask(ctx, "Orientation (0 - vertical, 1 - horizontal): ")
		if err != nil {
			return 0, err
		}

		switch line {
		case "0":
			return mb.OrientationVertical, nil
		case "1":
			return mb.OrientationHorizontal, nil
		}
		p.Println("Invalid input. Enter 0 or 1.")
	}
}

func (p *Prompter) AskYesNo(ctx context.Context, prompt string) (bool, error) {
	for {
		line, err := p.Ask(ctx, prompt)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.Println("Please answer y or n.")
	}
}
