package main

import (
	"strings"
	"testing"

	"github.com/leftmike/gcpath"
)

func TestStrokesJS(t *testing.T) {
	d := gcpath.Drawing{Strokes: []gcpath.Stroke{
		{{X: 0, Y: 0}, {X: 1.5, Y: -2}},
	}}
	got := strokesJS(d)
	want := "  [{x: 0, y: 0},{x: 1.5, y: -2}],\n"
	if got != want {
		t.Errorf("strokesJS(): got %q want %q", got, want)
	}
}

func TestConfigJS(t *testing.T) {
	ext := gcpath.NewBounds().Add(-1, 2).Add(3, 4)
	got := configJS(ext)
	if !strings.Contains(got, "minPos: {x: -1, y: 2}") || !strings.Contains(got, "maxPos: {x: 3, y: 4}") {
		t.Errorf("configJS(): got %q", got)
	}
	if got := configJS(gcpath.NewBounds()); !strings.Contains(got, "maxPos: {x: 1, y: 1}") {
		t.Errorf("configJS(empty): got %q", got)
	}
}
