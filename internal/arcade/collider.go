package arcade

// Collider is a collide or overlap query the world runs once per step.
type Collider struct {
	world       *World
	name        string
	active      bool
	overlapOnly bool

	object1, object2 Target

	collide CollideFunc
	process ProcessFunc
}

// Update runs the query against the world.
func (c *Collider) Update() {
	if c.world == nil {
		return
	}
	c.world.collideObjects(c.object1, c.object2, c.collide, c.process, c.overlapOnly)
}

// Name returns the collider name.
func (c *Collider) Name() string { return c.name }

// SetName sets the collider name.
func (c *Collider) SetName(name string) *Collider {
	c.name = name
	return c
}

// Active reports whether the collider runs each step.
func (c *Collider) Active() bool { return c.active }

// SetActive pauses or resumes the collider without removing it.
func (c *Collider) SetActive(active bool) *Collider {
	c.active = active
	return c
}

// OverlapOnly reports whether the collider only detects overlaps.
func (c *Collider) OverlapOnly() bool { return c.overlapOnly }

// Destroy removes the collider from its world and drops its references.
func (c *Collider) Destroy() {
	if c.world != nil {
		c.world.RemoveCollider(c)
	}
	c.world = nil
	c.object1 = Target{}
	c.object2 = Target{}
	c.collide = nil
	c.process = nil
}
