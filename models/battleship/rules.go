package battleship

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	cerr "github.com/saeidalz13/battleship-backend/internal/error"
)

const (
	DefaultGridSize = 10

	// Row labels are rendered as letters in some clients
	MaxGridSize = 26
)

// Rules describe the board and the fleet each player places on it.
// Fleet holds ship lengths in the order they are placed.
type Rules struct {
	GridSize int   `yaml:"grid_size" json:"grid_size"`
	Fleet    []int `yaml:"fleet" json:"fleet"`
}

func DefaultRules() Rules {
	return Rules{
		GridSize: DefaultGridSize,
		Fleet:    []int{3, 2, 2, 1, 1, 1, 1},
	}
}

// LoadRules reads rules from a YAML file. Missing fields fall back to
// DefaultRules.
func LoadRules(filePath string) (Rules, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	rules := DefaultRules()
	rules.Fleet = nil
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("failed to parse rules YAML: %w", err)
	}
	if rules.Fleet == nil {
		rules.Fleet = DefaultRules().Fleet
	}

	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

func (r Rules) Validate() error {
	if r.GridSize < 1 || r.GridSize > MaxGridSize {
		return cerr.ErrRules(fmt.Sprintf("grid size must be between 1 and %d, got: %d", MaxGridSize, r.GridSize))
	}
	if len(r.Fleet) == 0 {
		return cerr.ErrRules("fleet cannot be empty")
	}
	// A ship together with the buffer on its right and below covers
	// (length+1)*2 cells of a board one row and one column larger, and
	// those areas never overlap.
	area := 0
	for _, length := range r.Fleet {
		if length < 1 || length > r.GridSize {
			return cerr.ErrRules(fmt.Sprintf("ship length must be between 1 and %d, got: %d", r.GridSize, length))
		}
		area += (length + 1) * 2
	}
	if area > (r.GridSize+1)*(r.GridSize+1) {
		return cerr.ErrRules(fmt.Sprintf("fleet %v does not fit on a %dx%d grid", r.Fleet, r.GridSize, r.GridSize))
	}
	return nil
}

// WithGridSize returns a copy of the rules using another board size.
func (r Rules) WithGridSize(size int) Rules {
	fleet := make([]int, len(r.Fleet))
	copy(fleet, r.Fleet)
	return Rules{GridSize: size, Fleet: fleet}
}
