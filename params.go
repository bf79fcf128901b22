package fractree

import (
	"errors"
	"fmt"

	"github.com/esimov/fractree/utils"
)

// The documented ranges for each numeric tree parameter.
// Values outside of them are rejected by Validate and pulled back by Clamp.
const (
	MinBaseLength, MaxBaseLength           = 50.0, 300.0
	MinAngleVariation, MaxAngleVariation   = 15.0, 60.0
	MinLengthFactor, MaxLengthFactor       = 0.5, 0.9
	MinDepth, MaxDepth                     = 3, 15
	MinTrunkThickness, MaxTrunkThickness   = 5.0, 40.0
	MinThicknessFactor, MaxThicknessFactor = 0.5, 0.9
	MinRandomness, MaxRandomness           = 0.0, 0.3
)

// ErrEmptyPalette is returned when no leaf color has been provided.
// The caller is expected to recover by supplying a default palette.
var ErrEmptyPalette = errors.New("the leaf color palette cannot be empty")

// InvalidParamError reports a tree parameter lying outside of its documented range.
type InvalidParamError struct {
	Param    string
	Value    any
	Min, Max any
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("invalid value %v for parameter %q: must be between %v and %v",
		e.Value, e.Param, e.Min, e.Max)
}

// Params options
type Params struct {
	BaseLength      float64
	AngleVariation  float64
	LengthFactor    float64
	Depth           int
	TrunkThickness  float64
	ThicknessFactor float64
	Randomness      float64
	GrowUpward      bool
	TrunkColor      string
	LeafColors      []string
	BgColor         string
	CanvasWidth     int
	CanvasHeight    int
}

// DefaultParams returns the parameter set used when no explicit options are provided.
func DefaultParams() *Params {
	return &Params{
		BaseLength:      180,
		AngleVariation:  35,
		LengthFactor:    0.65,
		Depth:           8,
		TrunkThickness:  20,
		ThicknessFactor: 0.75,
		Randomness:      0.1,
		GrowUpward:      true,
		TrunkColor:      "#7c2d12",
		LeafColors:      []string{"#166534", "#22c55e", "#f59e0b"},
		BgColor:         "#0f172a",
		CanvasWidth:     1200,
		CanvasHeight:    800,
	}
}

// Validate checks every parameter against its documented range and returns
// an InvalidParamError describing the first offending field, rather than
// silently clamping it. This way the caller gets deterministic feedback
// before any segment is produced.
func (p *Params) Validate() error {
	checks := []struct {
		param    string
		val      float64
		min, max float64
	}{
		{"base-length", p.BaseLength, MinBaseLength, MaxBaseLength},
		{"angle", p.AngleVariation, MinAngleVariation, MaxAngleVariation},
		{"length-factor", p.LengthFactor, MinLengthFactor, MaxLengthFactor},
		{"depth", float64(p.Depth), MinDepth, MaxDepth},
		{"thickness", p.TrunkThickness, MinTrunkThickness, MaxTrunkThickness},
		{"thickness-factor", p.ThicknessFactor, MinThicknessFactor, MaxThicknessFactor},
		{"randomness", p.Randomness, MinRandomness, MaxRandomness},
	}

	for _, c := range checks {
		if c.val < c.min || c.val > c.max {
			return &InvalidParamError{Param: c.param, Value: c.val, Min: c.min, Max: c.max}
		}
	}

	if p.CanvasWidth <= 0 || p.CanvasHeight <= 0 {
		return &InvalidParamError{
			Param: "canvas",
			Value: fmt.Sprintf("%dx%d", p.CanvasWidth, p.CanvasHeight),
			Min:   "1x1", Max: "unbounded",
		}
	}

	if len(p.LeafColors) == 0 {
		return ErrEmptyPalette
	}

	if _, err := ParseHexColor(p.TrunkColor); err != nil {
		return err
	}
	if _, err := ParseHexColor(p.BgColor); err != nil {
		return err
	}
	for _, c := range p.LeafColors {
		if _, err := ParseHexColor(c); err != nil {
			return err
		}
	}
	return nil
}

// Clamp returns a copy of the parameter set with every numeric field pulled
// back into its documented range. It is the lenient alternative to Validate
// for callers which prefer a best-effort tree over an error.
func (p *Params) Clamp() *Params {
	c := *p
	c.BaseLength = utils.Clamp(p.BaseLength, MinBaseLength, MaxBaseLength)
	c.AngleVariation = utils.Clamp(p.AngleVariation, MinAngleVariation, MaxAngleVariation)
	c.LengthFactor = utils.Clamp(p.LengthFactor, MinLengthFactor, MaxLengthFactor)
	c.Depth = utils.Clamp(p.Depth, MinDepth, MaxDepth)
	c.TrunkThickness = utils.Clamp(p.TrunkThickness, MinTrunkThickness, MaxTrunkThickness)
	c.ThicknessFactor = utils.Clamp(p.ThicknessFactor, MinThicknessFactor, MaxThicknessFactor)
	c.Randomness = utils.Clamp(p.Randomness, MinRandomness, MaxRandomness)
	if c.CanvasWidth <= 0 {
		c.CanvasWidth = DefaultParams().CanvasWidth
	}
	if c.CanvasHeight <= 0 {
		c.CanvasHeight = DefaultParams().CanvasHeight
	}
	if len(c.LeafColors) == 0 {
		c.LeafColors = DefaultParams().LeafColors
	}
	return &c
}
