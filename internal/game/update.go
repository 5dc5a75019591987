package game

import "github.com/vovakirdan/cupid-arrow/internal/core"

// step advances the session by one tick. Order matters: collisions use the
// post-move player and post-advance objects, and a tick that ends the session
// does not score.
func (e *Engine) step() {
	e.st.tick++

	e.movePlayer()
	e.spawnObjects()
	e.advanceObjects()
	e.decayTimers()
	e.decayTrails()
	e.resolvePickups()
	if e.resolveArrows() {
		return
	}
	e.addScore()
}

// playerSpeed returns the effective horizontal speed for this tick.
func (e *Engine) playerSpeed() float64 {
	p := e.cfg.Player
	speed := p.BaseSpeed
	if e.st.items.Speed.Active {
		speed = p.BoostedSpeed
	}
	if e.st.status.Slowed.Active {
		speed = max(p.MinSpeed, speed*p.SlowFactor)
	}
	return speed
}

func (e *Engine) movePlayer() {
	in := e.st.input
	if !in.Left && !in.Right {
		return
	}

	speed := e.playerSpeed()
	half := e.cfg.Player.Size / 2
	from := e.st.player.Pos
	x := from.X

	// Both directions are computed from the pre-move x, so right wins when both are held.
	if in.Left {
		x = core.ClampF(from.X-speed, half, e.cfg.Field.Width-half)
		e.maybeTrail(from)
	}
	if in.Right {
		x = core.ClampF(from.X+speed, half, e.cfg.Field.Width-half)
		e.maybeTrail(from)
	}
	e.st.player.Pos.X = x
}

func (e *Engine) maybeTrail(at core.Vec2) {
	if !e.st.items.Speed.Active {
		return
	}
	if e.rng.Float64() < e.cfg.Player.TrailChance {
		e.st.trails = append(e.st.trails, Trail{ID: e.st.id(), Pos: at, Opacity: 1})
	}
}

func (e *Engine) spawnObjects() {
	sp := e.cfg.Spawns
	level := e.st.level

	arrowChance := sp.Arrow
	if level >= sp.ArrowFastLevel {
		arrowChance = sp.ArrowFast
	}
	e.trySpawn(KindArrow, arrowChance, e.cfg.Objects.ArrowSpeed)

	if level >= sp.ConfusionLevel {
		e.trySpawn(KindConfusion, sp.Confusion, e.cfg.Objects.PickupSpeed)
	}
	if level >= sp.SlowLevel {
		e.trySpawn(KindSlow, sp.Slow, e.cfg.Objects.PickupSpeed)
	}
}

func (e *Engine) trySpawn(kind ObjectKind, chance, vy float64) {
	if e.rng.Float64() >= chance {
		return
	}
	margin := e.cfg.Field.SpawnMargin
	x := margin + e.rng.Float64()*(e.cfg.Field.Width-2*margin)
	obj := Object{ID: e.st.id(), Kind: kind, Pos: core.Vec2{X: x, Y: 0}, VY: vy}
	if kind == KindArrow {
		e.st.arrows = append(e.st.arrows, obj)
	} else {
		e.st.pickups = append(e.st.pickups, obj)
	}
}

func (e *Engine) advanceObjects() {
	margin := e.cfg.Field.Margin
	bottom := e.cfg.Field.Height + margin

	arrows := e.st.arrows[:0]
	for _, a := range e.st.arrows {
		a.Pos.Y += a.VY
		if a.Pos.Y <= -margin || a.Pos.Y >= bottom {
			continue
		}
		arrows = append(arrows, a)
	}
	e.st.arrows = arrows

	pickups := e.st.pickups[:0]
	for _, p := range e.st.pickups {
		p.Pos.Y += p.VY
		if p.Pos.Y >= bottom {
			continue
		}
		pickups = append(pickups, p)
	}
	e.st.pickups = pickups
}

func (e *Engine) decayTimers() {
	units := e.cfg.Timing.TickUnits

	decaySlot(&e.st.items.Shield, units)
	decaySlot(&e.st.items.Speed, units)
	decayStatus(&e.st.status.Confused, units)
	decayStatus(&e.st.status.Slowed, units)
	decayStatus(&e.st.status.Invincible, units)

	if e.st.hitGuard > 0 {
		e.st.hitGuard = max(0, e.st.hitGuard-units)
	}
}

func decaySlot(s *ItemSlot, units int) {
	if !s.Active {
		return
	}
	s.Remaining -= units
	if s.Remaining <= 0 {
		s.Remaining = 0
		s.Active = false
	}
}

func decayStatus(s *Status, units int) {
	if !s.Active {
		return
	}
	s.Remaining -= units
	if s.Remaining <= 0 {
		s.Remaining = 0
		s.Active = false
	}
}

func (e *Engine) decayTrails() {
	fade := e.cfg.Player.TrailFade
	trails := e.st.trails[:0]
	for _, t := range e.st.trails {
		t.Opacity -= fade
		if t.Opacity <= 0 {
			continue
		}
		trails = append(trails, t)
	}
	e.st.trails = trails
}

// resolvePickups removes every pickup touching the player. The shield absorbs
// their effect; otherwise the matching status restarts at full duration.
func (e *Engine) resolvePickups() {
	radius := e.cfg.PickupHitRadius()
	player := e.st.player.Pos
	shielded := e.st.items.Shield.Active

	pickups := e.st.pickups[:0]
	for _, p := range e.st.pickups {
		if !core.Within(p.Pos, player, radius) {
			pickups = append(pickups, p)
			continue
		}
		if shielded {
			continue
		}
		switch p.Kind {
		case KindConfusion:
			e.st.status.Confused = Status{Active: true, Remaining: e.cfg.Effects.Confusion}
		case KindSlow:
			e.st.status.Slowed = Status{Active: true, Remaining: e.cfg.Effects.Slow}
		}
	}
	e.st.pickups = pickups
}

// resolveArrows applies at most one arrow hit per tick and reports whether the
// hit ended the session.
func (e *Engine) resolveArrows() bool {
	if e.st.status.Invincible.Active || e.st.hitGuard > 0 {
		return false
	}

	radius := e.cfg.Objects.ArrowHitRadius
	player := e.st.player.Pos
	hit := -1
	for i, a := range e.st.arrows {
		if core.Within(a.Pos, player, radius) {
			hit = i
			break
		}
	}
	if hit < 0 {
		return false
	}

	e.st.arrows = append(e.st.arrows[:hit], e.st.arrows[hit+1:]...)
	e.st.hitGuard = e.cfg.Timing.HitGuard
	if e.st.items.Shield.Active {
		return false
	}

	damage := 1
	if e.st.status.Confused.Active {
		damage = e.cfg.Effects.ConfusedDamage
	}
	e.st.lives = max(0, e.st.lives-damage)
	e.st.status.Invincible = Status{Active: true, Remaining: e.cfg.Timing.Invincibility}

	if e.st.lives == 0 {
		e.endSession()
		return true
	}
	return false
}

func (e *Engine) addScore() {
	e.st.score++
	sc := e.cfg.Scoring
	if sc.PointsPerLevel > 0 && e.st.score%sc.PointsPerLevel == 0 && e.st.level < sc.MaxLevel {
		e.st.level++
	}
}
