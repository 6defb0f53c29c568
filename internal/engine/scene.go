package engine

type Scene struct {
	Name        string
	GameObjects []*GameObject
	World       WorldAccess
	uids        map[uint64]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		uids:        make(map[uint64]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	s.GameObjects = append(s.GameObjects, g)
	s.index(g)
}

// index registers g and its children for UID lookup.
func (s *Scene) index(g *GameObject) {
	g.Scene = s
	s.uids[g.UID] = g
	for _, child := range g.Children {
		s.index(child)
	}
}

// FindByUID returns the object with the given UID anywhere in the hierarchy.
func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uids[uid]
}

// Walk visits every object in the scene depth-first, parents before children.
func (s *Scene) Walk(fn func(g *GameObject)) {
	var visit func(g *GameObject)
	visit = func(g *GameObject) {
		fn(g)
		for _, child := range g.Children {
			visit(child)
		}
	}
	for _, g := range s.GameObjects {
		visit(g)
	}
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}

func (s *Scene) FixedUpdate(step float32) {
	for _, g := range s.GameObjects {
		g.FixedUpdate(step)
	}
}
