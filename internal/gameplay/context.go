package gameplay

import (
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Context is the mutable score/lives sink that rules read and update.
// Presentation and persistence of these values live elsewhere.
type Context struct {
	SessionID uuid.UUID
	Lives     int
	Score     int
	StartTime time.Time

	played time.Duration
	over   bool
}

func NewContext(lives int) *Context {
	return &Context{
		SessionID: uuid.New(),
		Lives:     lives,
		StartTime: time.Now(),
	}
}

func (c *Context) AddScore(points int) { c.Score += points }
func (c *Context) LoseLife()           { c.Lives-- }

// Advance accumulates simulated play time.
func (c *Context) Advance(dt time.Duration) {
	if !c.over {
		c.played += dt
	}
}

// Played returns the simulated time since the session started.
func (c *Context) Played() time.Duration { return c.played }

// Over reports whether the game has ended.
func (c *Context) Over() bool { return c.over }

func (c *Context) finish() { c.over = true }

// Viewport is the read-only play area used for spawn placement.
type Viewport struct {
	Width  float64
	Height float64
}

func (v Viewport) Center() mgl64.Vec2 {
	return mgl64.Vec2{v.Width / 2, v.Height / 2}
}

// Contains reports whether p lies inside the viewport.
func (v Viewport) Contains(p mgl64.Vec2) bool {
	return p.X() >= 0 && p.X() <= v.Width && p.Y() >= 0 && p.Y() <= v.Height
}

// RandomEdge picks a random point on one of the four viewport edges.
func (v Viewport) RandomEdge(rng *rand.Rand) mgl64.Vec2 {
	switch rng.Intn(4) {
	case 0: // top
		return mgl64.Vec2{rng.Float64() * v.Width, 0}
	case 1: // right
		return mgl64.Vec2{v.Width, rng.Float64() * v.Height}
	case 2: // bottom
		return mgl64.Vec2{rng.Float64() * v.Width, v.Height}
	default: // left
		return mgl64.Vec2{0, rng.Float64() * v.Height}
	}
}

// EdgeMidpoints returns the midpoints of the top, right, bottom and left edges.
func (v Viewport) EdgeMidpoints() [4]mgl64.Vec2 {
	return [4]mgl64.Vec2{
		{v.Width / 2, 0},
		{v.Width, v.Height / 2},
		{v.Width / 2, v.Height},
		{0, v.Height / 2},
	}
}

// Outcome is handed to the Presenter when the game ends.
type Outcome struct {
	SessionID uuid.UUID
	Score     int
	Played    time.Duration
	HighScore bool
}

// Presenter shows modal game outcomes (game over, new high score prompt).
type Presenter interface {
	GameOver(o Outcome)
}

// Leaderboard decides whether a score earns a leaderboard entry.
// Storage is owned by the implementation.
type Leaderboard interface {
	Qualifies(score int) bool
}
