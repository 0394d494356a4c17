// Package pattern holds the fixed growth profiles and their seed layouts.
package pattern

import (
	"math"
	"sort"

	"plum-bloom/internal/core"
)

// ID names a growth pattern.
type ID string

const (
	PlumA    ID = "plumA"
	SpiralB  ID = "spiralB"
	CrystalC ID = "crystalC"
)

// Profile is the immutable parameter set controlling branch growth.
type Profile struct {
	ID ID

	// Spread is the maximum random angular swing applied to each child.
	Spread float64
	// Twist is a constant angular bias added to every child.
	Twist float64

	DecayMin float64
	DecayMax float64

	DepthLimit  int
	SplitChance float64

	MinChildren int
	MaxChildren int
}

// SeedFunc lays out the initial trunks for a surface of the given size.
type SeedFunc func(size core.Size) []core.Branch

type entry struct {
	profile Profile
	seeds   SeedFunc
}

var registry = map[ID]entry{}

// Register adds a profile and its seed layout. Empty identifiers and nil seed
// functions are ignored.
func Register(p Profile, seeds SeedFunc) {
	if p.ID == "" || seeds == nil {
		return
	}
	registry[p.ID] = entry{profile: p, seeds: seeds}
}

// Lookup returns the profile registered under id.
func Lookup(id ID) (Profile, bool) {
	e, ok := registry[id]
	return e.profile, ok
}

// Seeds returns the starting branches of pattern id for the given surface.
func Seeds(id ID, size core.Size) []core.Branch {
	e, ok := registry[id]
	if !ok {
		return nil
	}
	return e.seeds(size)
}

// IDs lists the registered patterns in a stable order.
func IDs() []ID {
	ids := make([]ID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return order(ids[i]) < order(ids[j]) })
	return ids
}

// Next returns the pattern after id, wrapping around. Negative direction walks
// backwards.
func Next(id ID, direction int) ID {
	ids := IDs()
	if len(ids) == 0 {
		return id
	}
	cur := 0
	for i, v := range ids {
		if v == id {
			cur = i
			break
		}
	}
	n := len(ids)
	return ids[((cur+direction)%n+n)%n]
}

func order(id ID) int {
	switch id {
	case PlumA:
		return 0
	case SpiralB:
		return 1
	case CrystalC:
		return 2
	}
	return 3
}

// TrunkLength is the seed branch length for a surface.
func TrunkLength(size core.Size) float64 {
	return 0.04 * size.Min()
}

func radial(size core.Size, count int, phase float64) []core.Branch {
	center := core.Point{X: float64(size.W) / 2, Y: float64(size.H) / 2}
	length := TrunkLength(size)
	out := make([]core.Branch, count)
	for i := range out {
		out[i] = core.Branch{
			Start:     center,
			Length:    length,
			Theta:     phase + float64(i)*2*math.Pi/float64(count),
			HueOffset: float64(i) * 360 / float64(count) * 0.1,
		}
	}
	return out
}

func init() {
	Register(Profile{
		ID:          PlumA,
		Spread:      0.52,
		DecayMin:    0.76,
		DecayMax:    0.92,
		DepthLimit:  12,
		SplitChance: 0.62,
		MinChildren: 1,
		MaxChildren: 3,
	}, func(size core.Size) []core.Branch {
		w, h := float64(size.W), float64(size.H)
		length := TrunkLength(size)
		return []core.Branch{
			{Start: core.Point{X: w * 0.24, Y: h}, Length: length, Theta: -math.Pi / 2},
			{Start: core.Point{X: w * 0.76, Y: 0}, Length: length, Theta: math.Pi / 2, HueOffset: 18},
		}
	})
	Register(Profile{
		ID:          SpiralB,
		Spread:      0.36,
		Twist:       0.11,
		DecayMin:    0.8,
		DecayMax:    0.94,
		DepthLimit:  14,
		SplitChance: 0.46,
		MinChildren: 1,
		MaxChildren: 2,
	}, func(size core.Size) []core.Branch {
		return radial(size, 4, math.Pi/4)
	})
	Register(Profile{
		ID:          CrystalC,
		Spread:      0.28,
		DecayMin:    0.7,
		DecayMax:    0.86,
		DepthLimit:  9,
		SplitChance: 0.74,
		MinChildren: 2,
		MaxChildren: 3,
	}, func(size core.Size) []core.Branch {
		return radial(size, 6, -math.Pi/2)
	})
}
