package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linggen/internal/descriptor"
)

const eps = 1e-9

func TestAnchors_RotationallyConsistent(t *testing.T) {
	a := Anchors()

	assert.InDelta(t, 0, a[0].X, eps)
	assert.InDelta(t, -Radius, a[0].Y, eps)
	assert.Equal(t, descriptor.Metal, a[0].Element)
	assert.Equal(t, -90.0, a[0].AngleDeg)

	for i, anchor := range a {
		assert.InDelta(t, Radius, math.Hypot(anchor.X, anchor.Y), eps, "anchor %d", i)
		assert.Equal(t, descriptor.Element(i), anchor.Element)
		if i > 0 {
			assert.InDelta(t, 72, anchor.AngleDeg-a[i-1].AngleDeg, eps)
		}
	}

	// Clockwise in screen space: Wood sits right of Metal.
	assert.Greater(t, a[descriptor.Wood].X, 0.0)
}

func TestAnchors_IndependentOfClassification(t *testing.T) {
	before := Anchors()
	_ = ActiveSubset(descriptor.Parse("伪灵根 (金、木、水、火、土)"))
	assert.Equal(t, before, Anchors())
}

func TestActiveSubset_TableOrder(t *testing.T) {
	got := ActiveSubset(descriptor.Parse("真灵根 (水、木、金)"))
	require.Len(t, got, 3)
	assert.Equal(t, descriptor.Metal, got[0].Element)
	assert.Equal(t, descriptor.Wood, got[1].Element)
	assert.Equal(t, descriptor.Water, got[2].Element)

	assert.Empty(t, ActiveSubset(descriptor.Parse("隐灵根 (隐暗)")))
}

func TestConnectivePath(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		wantKind   PathKind
		wantPoints int
	}{
		{"single element", "天灵根 (火)", PathNone, 0},
		{"pair", "真灵根 (木、土)", PathSegment, 2},
		{"triangle", "真灵根 (金、木、水)", PathPolygon, 3},
		{"pentagram", "伪灵根 (金、木、水、火、土)", PathPolygon, 5},
		{"nothing active", "不存在灵根", PathNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ConnectivePath(ActiveSubset(descriptor.Parse(tt.descriptor)))
			assert.Equal(t, tt.wantKind, p.Kind)
			assert.Len(t, p.Points, tt.wantPoints)
		})
	}
}

func TestConnectivePath_TriangleFollowsTableOrder(t *testing.T) {
	p := ConnectivePath(ActiveSubset(descriptor.Parse("真灵根 (水、金、木)")))
	require.Equal(t, PathPolygon, p.Kind)

	a := Anchors()
	assert.Equal(t, []Point{a[0].Point, a[1].Point, a[2].Point}, p.Points)
	assert.Equal(t, "M0 -50 L 47.553 -15.451 L 29.389 40.451 Z", p.D())
}

func TestPath_D(t *testing.T) {
	assert.Equal(t, "", Path{}.D())

	seg := ConnectivePath(ActiveSubset(descriptor.Parse("真灵根 (火、土)")))
	assert.Equal(t, "M-29.389 40.451 L -47.553 -15.451", seg.D())
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "0", FormatFloat(-0.0000001))
	assert.Equal(t, "1.5", FormatFloat(1.5))
	assert.Equal(t, "47.553", FormatFloat(47.55282581))
}
