package engine

// GameObjectRef points at a GameObject by UID so simulation state can name a
// render object without holding it alive after the scene drops it.
type GameObjectRef struct {
	UID uint64 // 0 = none
}

// Get resolves the reference, or returns nil when it is empty or the object left the scene.
func (r GameObjectRef) Get(scene *Scene) *GameObject {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}

func (r GameObjectRef) IsValid() bool {
	return r.UID != 0
}

// Set points the reference at g. Pass nil to clear it.
func (r *GameObjectRef) Set(g *GameObject) {
	if g == nil {
		r.UID = 0
	} else {
		r.UID = g.UID
	}
}

func (r *GameObjectRef) Clear() {
	r.UID = 0
}
