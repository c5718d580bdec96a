package collision

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/emabo/imagecat/internal/hashing"
)

// MaxCounter bounds the name probe. Reaching it means the directory holds an
// implausible number of same-named files with different content.
const MaxCounter = 1_000_000

// ErrProbeExhausted is returned when no free or matching name was found
// below MaxCounter.
var ErrProbeExhausted = errors.New("collision probe exhausted")

// Kind is the outcome of a resolution.
type Kind int

const (
	// Place means the source goes to Action.Path.
	Place Kind = iota
	// AlreadyPresent means Action.Path already holds identical content.
	AlreadyPresent
)

func (k Kind) String() string {
	switch k {
	case Place:
		return "place"
	case AlreadyPresent:
		return "already-present"
	default:
		return "unknown"
	}
}

// Action is the decision for one source file.
type Action struct {
	Kind    Kind
	Path    string
	Counter int  // probe counter of Path; > 0 means the name was disambiguated
	Self    bool // the catalog entry is the source file itself
}

// Renamed reports whether the file is placed under a disambiguated name.
func (a Action) Renamed() bool {
	return a.Kind == Place && a.Counter > 0
}

// CandidateName returns baseName+extension for counter 0 and
// baseName_<counter>+extension otherwise.
func CandidateName(baseName, extension string, counter int) string {
	if counter == 0 {
		return baseName + extension
	}
	return baseName + "_" + strconv.Itoa(counter) + extension
}

// Resolver probes candidate names using an Occupancy and a ContentHasher.
type Resolver struct {
	occupancy  Occupancy
	hasher     hashing.ContentHasher
	maxCounter int
}

// NewResolver returns a Resolver.
func NewResolver(occupancy Occupancy, hasher hashing.ContentHasher) *Resolver {
	return &Resolver{
		occupancy:  occupancy,
		hasher:     hasher,
		maxCounter: MaxCounter,
	}
}

// Resolve picks the action for sourcePath placed into destinationDir as
// baseName+extension. The source is hashed at most once, and only when a
// candidate is occupied.
func (r *Resolver) Resolve(sourcePath, destinationDir, baseName, extension string) (Action, error) {
	source := filepath.Clean(sourcePath)
	var sourceSum string

	for counter := 0; counter <= r.maxCounter; counter++ {
		candidate := filepath.Join(destinationDir, CandidateName(baseName, extension, counter))

		occupant, occupied, err := r.occupancy.Occupant(candidate)
		if err != nil {
			return Action{}, err
		}
		if !occupied {
			return Action{Kind: Place, Path: candidate, Counter: counter}, nil
		}

		if candidate == source {
			return Action{Kind: AlreadyPresent, Path: candidate, Counter: counter, Self: true}, nil
		}

		if sourceSum == "" {
			if sourceSum, err = r.hasher.Sum(source); err != nil {
				return Action{}, fmt.Errorf("hashing source: %w", err)
			}
		}
		existingSum, err := r.hasher.Sum(occupant)
		if err != nil {
			return Action{}, fmt.Errorf("hashing existing %s: %w", candidate, err)
		}
		if existingSum == sourceSum {
			return Action{Kind: AlreadyPresent, Path: candidate, Counter: counter}, nil
		}
	}

	return Action{}, fmt.Errorf("%s in %s: %w", baseName+extension, destinationDir, ErrProbeExhausted)
}
