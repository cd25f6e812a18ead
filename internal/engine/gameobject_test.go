package engine

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestNewGameObject(t *testing.T) {
	obj := NewGameObject("Tile")

	if obj.Name != "Tile" {
		t.Errorf("Expected name 'Tile', got '%s'", obj.Name)
	}
	if obj.UID == 0 {
		t.Error("UID should not be 0")
	}
	if obj.Transform.Scale != (rl.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Expected unit scale, got %v", obj.Transform.Scale)
	}
}

func TestGameObjectUniqueUIDs(t *testing.T) {
	seen := map[uint64]bool{}
	for i := 0; i < 20; i++ {
		obj := NewGameObject("Rat")
		if seen[obj.UID] {
			t.Fatalf("duplicate UID %d", obj.UID)
		}
		seen[obj.UID] = true
	}
}

func TestGameObjectParentChild(t *testing.T) {
	parent := NewGameObject("Camera")
	child1 := NewGameObject("HeldRat")
	child2 := NewGameObject("Torch")

	parent.AddChild(child1)
	parent.AddChild(child2)
	if child1.Parent != parent || len(parent.Children) != 2 {
		t.Fatal("AddChild did not link parent and child")
	}

	parent.RemoveChild(child1)
	if len(parent.Children) != 1 || parent.Children[0] != child2 {
		t.Error("Wrong child removed")
	}
	if child1.Parent != nil {
		t.Error("Removed child should have nil parent")
	}
}

func TestWorldPositionFollowsParent(t *testing.T) {
	parent := NewGameObject("Camera")
	parent.Transform.Position = rl.Vector3{X: 1, Y: 2, Z: 3}
	parent.Transform.Rotation = rl.Vector3{Y: 90}

	child := NewGameObject("HeldRat")
	child.Transform.Position = rl.Vector3{X: 1}
	parent.AddChild(child)

	got := child.WorldPosition()
	// Rotating +X by 90 degrees about Y lands on the Z axis.
	if math.Abs(float64(got.X-1)) > 1e-5 || math.Abs(math.Abs(float64(got.Z-3))-1) > 1e-5 {
		t.Errorf("unexpected world position %v", got)
	}
	if child.WorldRotation().Y != 90 {
		t.Errorf("Expected inherited rotation 90, got %v", child.WorldRotation().Y)
	}
}

func TestGameObjectGetComponent(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &BaseComponent{}
	obj.AddComponent(comp)

	if comp.GetGameObject() != obj {
		t.Error("Component.gameObject should be set")
	}
	if GetComponent[*BaseComponent](obj) != comp {
		t.Error("GetComponent failed to find component")
	}
	if GetComponent[*syncCounter](obj) != nil {
		t.Error("GetComponent should return nil for a missing type")
	}
}

func TestGameObjectStartCalledOnce(t *testing.T) {
	obj := NewGameObject("Test")
	obj.Start()
	if !obj.started {
		t.Error("started flag should be true after Start()")
	}
	obj.Start()
}

type syncCounter struct {
	BaseComponent
	calls int
}

func (s *syncCounter) SyncTransform() { s.calls++ }

func TestSyncTransformReachesChildren(t *testing.T) {
	parent := NewGameObject("Player")
	child := NewGameObject("HeldRat")
	parent.AddChild(child)

	a, b := &syncCounter{}, &syncCounter{}
	parent.AddComponent(a)
	child.AddComponent(b)

	parent.SyncTransform()
	if a.calls != 1 || b.calls != 1 {
		t.Errorf("expected one sync each, got %d and %d", a.calls, b.calls)
	}
}
