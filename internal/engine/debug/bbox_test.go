package debug

import (
	"testing"

	"github.com/Faultbox/scenery/pkg/math"
	"github.com/Faultbox/scenery/pkg/render"
)

func TestBoxWireframe(t *testing.T) {
	b := math.NewBox(math.Vec3{X: -1, Y: -2, Z: -3}, math.Vec3{X: 1, Y: 2, Z: 3})
	lines := BoxWireframe(b)
	if len(lines) != BBoxWireframeVertexCount {
		t.Fatalf("expected %d vertices, got %d", BBoxWireframeVertexCount, len(lines))
	}
	for i, v := range lines {
		if (v.X != -1 && v.X != 1) || (v.Y != -2 && v.Y != 2) || (v.Z != -3 && v.Z != 3) {
			t.Errorf("vertex %d = %+v is not a corner", i, v)
		}
	}
	// Every edge changes exactly one axis.
	for i := 0; i < len(lines); i += 2 {
		a, b := lines[i], lines[i+1]
		changed := 0
		if a.X != b.X {
			changed++
		}
		if a.Y != b.Y {
			changed++
		}
		if a.Z != b.Z {
			changed++
		}
		if changed != 1 {
			t.Errorf("edge %d changes %d axes", i/2, changed)
		}
	}
}

func TestBoxWireframeEmpty(t *testing.T) {
	if lines := BoxWireframe(math.EmptyBox()); lines != nil {
		t.Errorf("expected no lines for the empty box, got %d", len(lines))
	}
}

func TestDrawBox(t *testing.T) {
	rec := render.NewRecorder()
	b := math.NewBox(math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1})
	DrawBox(rec, b, Highlight, DefaultBBoxPadding)

	if got := rec.Count(render.OpVertex); got != BBoxWireframeVertexCount {
		t.Errorf("expected %d vertices, got %d", BBoxWireframeVertexCount, got)
	}
	if rec.Count(render.OpPushAttrib) != 1 || rec.Count(render.OpPopAttrib) != 1 {
		t.Error("expected one balanced attribute push")
	}
	cmds := rec.Commands()
	first := cmds[0]
	if first.Op != render.OpPushAttrib {
		t.Errorf("expected push first, got %s", first.Op)
	}

	rec.Reset()
	DrawBox(rec, math.EmptyBox(), Highlight, DefaultBBoxPadding)
	if rec.Len() != 0 {
		t.Errorf("expected nothing for the empty box, got %d commands", rec.Len())
	}
}
