package engine

// GameObjectRef points at another object in the same scene by UID. Components
// hold refs instead of pointers so they can be wired before the target exists
// and resolved in Start.
//
// Example:
//
//	type Follower struct {
//	    engine.BaseComponent
//	    Target engine.GameObjectRef
//	}
//
//	func (f *Follower) Start() {
//	    if target := f.Target.Get(f.GetGameObject().Scene); target != nil {
//	        // ...
//	    }
//	}
type GameObjectRef struct {
	UID uint64 // 0 = none
}

// RefTo returns a ref to g, or an empty ref for nil.
func RefTo(g *GameObject) GameObjectRef {
	if g == nil {
		return GameObjectRef{}
	}
	return GameObjectRef{UID: g.UID}
}

// Get resolves the ref. Returns nil if the ref is empty, the scene is nil or
// the object is not part of the scene.
func (r GameObjectRef) Get(scene *Scene) *GameObject {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}
