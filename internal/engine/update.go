package engine

// Update advances the game by one host frame. The platform is asked for
// input first and for a redraw last.
func (g *Game) Update() {
	g.platform.ProcessEvents(g)

	if g.isOver {
		if g.events.Has(EventRestart) {
			g.Start()
		}
		g.platform.RenderGame(g)
		return
	}

	now := g.platform.SystemTime()
	delta := int(now - g.systemTime)
	g.tickAutoshift(delta)

	if g.events.Has(EventPause) {
		g.isPaused = !g.isPaused
		g.events = EventNone
		g.stateChanged = true
	}

	if g.isPaused {
		// Shift the gravity baseline so the pause does not count as fall time.
		g.lastFallTime += now - g.systemTime
	} else {
		if g.events != EventNone {
			g.applyEvents()
			g.events = EventNone
		}
		if now-g.lastFallTime >= int64(g.fallingDelay) {
			g.MoveTetromino(0, 1)
			g.lastFallTime = now
		}
	}

	g.systemTime = now
	g.platform.RenderGame(g)
}

// applyEvents runs the pending actions in their fixed precedence.
func (g *Game) applyEvents() {
	if g.events.Has(EventShowNext) {
		g.showPreview = !g.showPreview
		g.stateChanged = true
	}
	if g.events.Has(EventShowShadow) {
		g.showShadow = !g.showShadow
		g.stateChanged = true
	}
	if g.events.Has(EventDrop) {
		g.dropTetromino()
	}
	if g.events.Has(EventRotateCW) {
		g.RotateTetromino(true)
	}
	if g.events.Has(EventMoveRight) {
		g.MoveTetromino(1, 0)
	} else if g.events.Has(EventMoveLeft) {
		g.MoveTetromino(-1, 0)
	}
	if g.events.Has(EventMoveDown) {
		g.stats.Score += g.softDropScore()
		g.MoveTetromino(0, 1)
	}
}

// tickAutoshift counts down every armed repeat timer and re-emits the held
// event of each one that expires.
func (g *Game) tickAutoshift(delta int) {
	g.events |= countdown(&g.delayDown, delta, g.cfg.DASRepeat, EventMoveDown)
	g.events |= countdown(&g.delayLeft, delta, g.cfg.DASRepeat, EventMoveLeft)
	g.events |= countdown(&g.delayRight, delta, g.cfg.DASRepeat, EventMoveRight)
	if g.cfg.AutoRotation {
		g.events |= countdown(&g.delayRotation, delta, g.cfg.RotationRepeatPeriod, EventRotateCW)
	}
}

func countdown(timer *int, delta, repeat int, ev Event) Event {
	if *timer <= 0 {
		return EventNone
	}
	*timer -= delta
	if *timer > 0 {
		return EventNone
	}
	*timer = repeat
	return ev
}

// OnEventStart records a key press. Held movement keys arm their autoshift
// timer. Quit sets ErrPlayerQuits immediately.
func (g *Game) OnEventStart(ev Event) {
	for _, e := range ev.Events() {
		switch e {
		case EventQuit:
			g.errorCode = ErrPlayerQuits
		case EventMoveDown:
			g.events |= EventMoveDown
			g.delayDown = g.cfg.DASDelay
		case EventMoveLeft:
			g.events |= EventMoveLeft
			g.delayLeft = g.cfg.DASDelay
		case EventMoveRight:
			g.events |= EventMoveRight
			g.delayRight = g.cfg.DASDelay
		case EventRotateCW:
			g.events |= EventRotateCW
			if g.cfg.AutoRotation {
				g.delayRotation = g.cfg.RotationRepeatDelay
			}
		case EventDrop, EventRestart, EventPause, EventShowNext, EventShowShadow:
			g.events |= e
		}
	}
}

// OnEventEnd records a key release and disarms the matching timer.
func (g *Game) OnEventEnd(ev Event) {
	switch ev {
	case EventMoveDown:
		g.delayDown = timerInactive
	case EventMoveLeft:
		g.delayLeft = timerInactive
	case EventMoveRight:
		g.delayRight = timerInactive
	case EventRotateCW:
		g.delayRotation = timerInactive
	}
}
