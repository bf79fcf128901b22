package fractree

import (
	"image/color"
	"math/rand"
	"time"
)

// Branch is one straight, drawable unit of the tree. A full tree is an
// ordered sequence of branches: the trunk first, then every depth level in
// growth order. Branches are produced fresh on every Generate call and are
// never mutated afterwards.
type Branch struct {
	Start     Point
	End       Point
	Depth     int
	Thickness float64
	Color     color.NRGBA
}

// branchesPerLevel returns the number of branches the generator emits at a
// single depth level, which doubles on every split.
func branchesPerLevel(depth int) int {
	return 1 << depth
}

// TotalBranches returns the exact number of branches a tree of the given
// depth consists of: 2^(depth+1)-1.
func TotalBranches(depth int) int {
	return 1<<(depth+1) - 1
}

// Generate grows a full fractal tree out of the parameter set and returns its
// branches in growth order. The parameters are validated first and no branch
// is produced in case any of them is out of range.
//
// The random source drives the per-branch angle jitter and is only consumed
// when Randomness is greater than zero: with a zero Randomness the output is
// a pure function of the parameters. A nil rng falls back to a time-seeded
// source; pass a fixed-seed source for reproducible jittered trees.
func Generate(p *Params, rng *rand.Rand) ([]Branch, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	trunkCol, _ := ParseHexColor(p.TrunkColor)
	leafCols := make([]color.NRGBA, len(p.LeafColors))
	for i, c := range p.LeafColors {
		leafCols[i], _ = ParseHexColor(c)
	}

	// The trunk is anchored at the bottom-center of the canvas and points
	// straight up, or at the top-center pointing down for inverted growth.
	anchor := Point{X: float64(p.CanvasWidth) / 2, Y: float64(p.CanvasHeight)}
	heading := headingUp
	if !p.GrowUpward {
		anchor.Y = 0
		heading = headingDown
	}

	// Each stem carries the state the next split depends on but which the
	// emitted branch no longer needs: its heading and exact length.
	type stem struct {
		end     Point
		heading float64
		length  float64
	}

	branches := make([]Branch, 0, TotalBranches(p.Depth))
	branches = append(branches, Branch{
		Start:     anchor,
		End:       polarToCartesian(anchor, p.BaseLength, heading),
		Depth:     0,
		Thickness: p.TrunkThickness,
		Color:     depthColor(trunkCol, leafCols, 0, p.Depth),
	})

	level := []stem{{
		end:     branches[0].End,
		heading: heading,
		length:  p.BaseLength,
	}}
	thickness := p.TrunkThickness

	for d := 1; d <= p.Depth; d++ {
		next := make([]stem, 0, branchesPerLevel(d))
		col := depthColor(trunkCol, leafCols, d, p.Depth)
		thickness *= p.ThicknessFactor

		for _, parent := range level {
			length := parent.length * p.LengthFactor

			for _, side := range [2]float64{-1, 1} {
				h := parent.heading + side*p.AngleVariation + jitter(p, rng)
				end := polarToCartesian(parent.end, length, h)

				branches = append(branches, Branch{
					Start:     parent.end,
					End:       end,
					Depth:     d,
					Thickness: thickness,
					Color:     col,
				})
				next = append(next, stem{end: end, heading: h, length: length})
			}
		}
		level = next
	}

	return branches, nil
}

// jitter draws a bounded random angle perturbation used to give the tree a
// natural, non-symmetric look. It stays within ±Randomness·AngleVariation
// degrees and leaves the random source untouched when Randomness is zero.
func jitter(p *Params, rng *rand.Rand) float64 {
	if p.Randomness == 0 {
		return 0
	}
	return (rng.Float64()*2 - 1) * p.Randomness * p.AngleVariation
}
