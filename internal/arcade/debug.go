package arcade

// DebugGraphics receives the world's debug drawing. Colours are 0xRRGGBB.
type DebugGraphics interface {
	Clear()
	StrokeRect(x, y, w, h float64, color uint32)
	StrokeCircle(x, y, radius float64, color uint32)
	LineBetween(x1, y1, x2, y2 float64, color uint32)
}

// drawDebug renders every body that asked for it.
func (w *World) drawDebug() {
	g := w.debugGraphics
	if g == nil || !w.Debug.Enabled {
		return
	}
	g.Clear()

	for _, b := range w.bodies.Items() {
		if b.willDrawDebug() {
			b.drawDebug(g, w.Debug.VelocityColor)
		}
	}
	for _, s := range w.staticBodies.Items() {
		if s.DebugShowBody {
			s.drawDebug(g)
		}
	}
}
