package engine

import "testing"

func TestSceneAddAndLookup(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Player")
	scene.AddGameObject(obj)

	if obj.Scene != scene {
		t.Error("GameObject.Scene not set")
	}
	if scene.FindByUID(obj.UID) != obj {
		t.Error("FindByUID failed")
	}
	if scene.FindByName("Player") != obj {
		t.Error("FindByName failed")
	}
	if scene.FindByName("Nobody") != nil {
		t.Error("FindByName should return nil for non-existent name")
	}
}

func TestSceneFindByTag(t *testing.T) {
	scene := NewScene("Test")
	for i, tags := range [][]string{{"tile"}, {"tile", "torch"}, {"projectile"}} {
		obj := NewGameObject(string(rune('a' + i)))
		obj.Tags = tags
		scene.AddGameObject(obj)
	}

	if n := len(scene.FindByTag("tile")); n != 2 {
		t.Errorf("Expected 2 tiles, got %d", n)
	}
	if n := len(scene.FindByTag("missing")); n != 0 {
		t.Errorf("Expected no matches, got %d", n)
	}
}

func TestSceneRemoveWithChildren(t *testing.T) {
	scene := NewScene("Test")
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")
	other := NewGameObject("Other")

	scene.AddGameObject(parent)
	scene.AddGameObject(child)
	scene.AddGameObject(other)
	parent.AddChild(child)

	scene.RemoveGameObject(parent)

	if len(scene.GameObjects) != 1 || scene.GameObjects[0] != other {
		t.Errorf("Expected only Other to remain, got %d objects", len(scene.GameObjects))
	}
	if scene.FindByUID(parent.UID) != nil || scene.FindByUID(child.UID) != nil {
		t.Error("removed objects still in UID map")
	}
}

func TestSceneRemoveChildDetaches(t *testing.T) {
	scene := NewScene("Test")
	group := NewGameObject("Tiles")
	tile := NewGameObject("Tile")
	scene.AddGameObject(group)
	scene.AddGameObject(tile)
	group.AddChild(tile)

	scene.RemoveGameObject(tile)

	if len(group.Children) != 0 || tile.Parent != nil {
		t.Error("removed child should be detached from its parent")
	}
	if len(scene.GameObjects) != 1 || scene.GameObjects[0] != group {
		t.Errorf("Expected only the group to remain, got %d objects", len(scene.GameObjects))
	}
}

func TestSceneClear(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Tile")
	scene.AddGameObject(obj)

	scene.Clear()
	if len(scene.GameObjects) != 0 || scene.FindByUID(obj.UID) != nil || obj.Scene != nil {
		t.Error("Clear should drop every object")
	}
}

func TestSceneSyncTransformsSkipsInactive(t *testing.T) {
	scene := NewScene("Test")
	active := NewGameObject("Active")
	inactive := NewGameObject("Inactive")
	inactive.Active = false

	a, b := &syncCounter{}, &syncCounter{}
	active.AddComponent(a)
	inactive.AddComponent(b)
	scene.AddGameObject(active)
	scene.AddGameObject(inactive)

	scene.SyncTransforms()
	if a.calls != 1 || b.calls != 0 {
		t.Errorf("unexpected sync counts %d, %d", a.calls, b.calls)
	}
}
