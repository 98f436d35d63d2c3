package gameplay

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/kenney-asteroids/sim/internal/core/collision"
	"github.com/kenney-asteroids/sim/internal/core/ecs"
	"github.com/kenney-asteroids/sim/internal/core/event"
	"github.com/kenney-asteroids/sim/internal/entity"
	"go.uber.org/zap"
)

// hazard is an enemy body that can be soft-destroyed: asteroids and ufos.
type hazard interface {
	ecs.Body
	State() entity.State
	Destroy()
}

// Big asteroids break into two medium ones, veering off the parent heading.
var (
	fragmentSpread = mgl64.DegToRad(20)
	fragmentOffset = mgl64.Vec2{23, 23}
)

// shipHitsHazard resolves a live ship colliding with a live enemy.
func shipHitsHazard(ev collision.BodiesCollide) (*entity.Ship, hazard, bool) {
	s, h, ok := collision.Match[*entity.Ship, hazard](ev)
	if !ok || !h.Tags().Has(entity.TagEnemy) {
		return nil, nil, false
	}
	return s, h, s.State() == entity.Alive && h.State() == entity.Alive
}

// projectileHitsHazard resolves a live projectile colliding with a live enemy.
func projectileHitsHazard(ev collision.BodiesCollide) (*entity.Projectile, hazard, bool) {
	p, h, ok := collision.Match[*entity.Projectile, hazard](ev)
	if !ok || !h.Tags().Has(entity.TagEnemy) {
		return nil, nil, false
	}
	return p, h, p.State() == entity.Alive && h.State() == entity.Alive
}

// asteroidsCollide resolves two live asteroids running into each other.
func asteroidsCollide(ev collision.BodiesCollide) (*entity.Asteroid, *entity.Asteroid, bool) {
	a, b, ok := collision.Match[*entity.Asteroid, *entity.Asteroid](ev)
	if !ok {
		return nil, nil, false
	}
	return a, b, a.State() == entity.Alive && b.State() == entity.Alive
}

func registerPhysicsRules(bus *event.Bus, d *Deps) {
	type cond = event.Condition[collision.BodiesCollide]

	var shipHit cond = func(ev collision.BodiesCollide) bool {
		_, _, ok := shipHitsHazard(ev)
		return ok
	}
	var livesLeft cond = func(collision.BodiesCollide) bool { return d.Context.Lives > 0 }
	var noLivesLeft cond = func(collision.BodiesCollide) bool { return d.Context.Lives <= 0 }

	var projectileHit cond = func(ev collision.BodiesCollide) bool {
		_, _, ok := projectileHitsHazard(ev)
		return ok
	}
	var bigAsteroidHit cond = func(ev collision.BodiesCollide) bool {
		_, h, _ := projectileHitsHazard(ev)
		a, ok := h.(*entity.Asteroid)
		return ok && a.Size() == entity.Big
	}

	var asteroidsHit cond = func(ev collision.BodiesCollide) bool {
		_, _, ok := asteroidsCollide(ev)
		return ok
	}

	event.Register(bus,
		// ship vs asteroid / ufo
		event.Rule[collision.BodiesCollide]{
			Name: "ship hit: destroy enemy",
			When: shipHit,
			Then: func(ev collision.BodiesCollide) {
				_, h, _ := shipHitsHazard(ev)
				h.Destroy()
			},
		},
		event.Rule[collision.BodiesCollide]{
			Name: "ship hit with lives left: lose a life",
			When: event.All(shipHit, livesLeft),
			Then: func(collision.BodiesCollide) { d.Context.LoseLife() },
		},
		event.Rule[collision.BodiesCollide]{
			Name: "ship hit with lives left: destroy ship",
			When: event.All(shipHit, livesLeft),
			Then: func(ev collision.BodiesCollide) {
				s, _, _ := shipHitsHazard(ev)
				s.Destroy()
			},
		},
		event.Rule[collision.BodiesCollide]{
			Name: "ship hit without lives: remove ship",
			When: event.All(shipHit, noLivesLeft),
			Then: func(ev collision.BodiesCollide) {
				s, _, _ := shipHitsHazard(ev)
				d.World.Remove(s)
			},
		},
		event.Rule[collision.BodiesCollide]{
			Name: "ship hit without lives: game over",
			When: event.All(shipHit, noLivesLeft),
			Then: func(collision.BodiesCollide) { d.gameOver() },
		},

		// projectile vs asteroid / ufo
		event.Rule[collision.BodiesCollide]{
			Name: "projectile hit: score",
			When: projectileHit,
			Then: func(ev collision.BodiesCollide) {
				_, h, _ := projectileHitsHazard(ev)
				d.score("projectile hit: score", h)
			},
		},
		event.Rule[collision.BodiesCollide]{
			Name: "projectile hit: remove projectile",
			When: projectileHit,
			Then: func(ev collision.BodiesCollide) {
				p, _, _ := projectileHitsHazard(ev)
				d.World.Remove(p)
			},
		},
		event.Rule[collision.BodiesCollide]{
			Name: "projectile hit: destroy enemy",
			When: projectileHit,
			Then: func(ev collision.BodiesCollide) {
				_, h, _ := projectileHitsHazard(ev)
				h.Destroy()
			},
		},
		event.Rule[collision.BodiesCollide]{
			Name: "projectile hit big asteroid: fall apart",
			When: event.All(projectileHit, bigAsteroidHit),
			Then: func(ev collision.BodiesCollide) {
				_, h, _ := projectileHitsHazard(ev)
				d.fragment("projectile hit big asteroid: fall apart", h.(*entity.Asteroid))
			},
		},

		// asteroid vs asteroid
		event.Rule[collision.BodiesCollide]{
			Name: "asteroids collide: destroy both",
			When: asteroidsHit,
			Then: func(ev collision.BodiesCollide) {
				a, b, _ := asteroidsCollide(ev)
				a.Destroy()
				b.Destroy()
			},
		},
		event.Rule[collision.BodiesCollide]{
			Name: "asteroids collide: big ones fall apart",
			When: asteroidsHit,
			Then: func(ev collision.BodiesCollide) {
				a, b, _ := asteroidsCollide(ev)
				for _, x := range []*entity.Asteroid{a, b} {
					if x.Size() == entity.Big {
						d.fragment("asteroids collide: big ones fall apart", x)
					}
				}
			},
		},
	)
}

func (d *Deps) score(rule string, e ecs.Entity) {
	kind, err := entity.ScoreKind(e)
	if err != nil {
		d.fail(rule, err)
		return
	}
	points, err := d.Scorer.ScoreFor(kind)
	if err != nil {
		d.fail(rule, err)
		return
	}
	d.Context.AddScore(points)
}

// fragment stages two medium asteroids veering off either side of a's heading.
func (d *Deps) fragment(rule string, a *entity.Asteroid) {
	heading := a.Heading()
	d.spawn(rule, entity.SpawnRequest{
		Kind:     entity.KindAsteroidMedium,
		Position: a.Position().Sub(fragmentOffset),
		Heading:  heading - fragmentSpread,
	})
	d.spawn(rule, entity.SpawnRequest{
		Kind:     entity.KindAsteroidMedium,
		Position: a.Position().Add(fragmentOffset),
		Heading:  heading + fragmentSpread,
	})
}

func (d *Deps) gameOver() {
	if d.Context.Over() {
		return
	}
	d.Context.finish()
	o := Outcome{
		SessionID: d.Context.SessionID,
		Score:     d.Context.Score,
		Played:    d.Context.Played(),
	}
	if d.Leaderboard != nil {
		o.HighScore = d.Leaderboard.Qualifies(o.Score)
	}
	d.Log.Info("game over",
		zap.String("session", o.SessionID.String()),
		zap.Int("score", o.Score),
		zap.Duration("played", o.Played),
		zap.Bool("high_score", o.HighScore),
	)
	if d.Presenter != nil {
		d.Presenter.GameOver(o)
	}
}
