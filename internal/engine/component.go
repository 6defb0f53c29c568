package engine

type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// FixedUpdater is implemented by components that step with the physics clock.
// FixedUpdate runs zero or more times per rendered frame, always with the same
// step length.
type FixedUpdater interface {
	FixedUpdate(step float32)
}

// Drawable is implemented by components that render something in 3D mode.
type Drawable interface {
	Draw()
}

// Unloader is implemented by components holding GPU or audio resources.
type Unloader interface {
	Unload()
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
