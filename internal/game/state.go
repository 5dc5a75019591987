package game

import "github.com/vovakirdan/cupid-arrow/internal/core"

// Screen identifies the top-level phase of a session.
type Screen int

const (
	ScreenStart Screen = iota
	ScreenPlaying
	ScreenNameInput
	ScreenRankings
)

// String returns the wire name of the screen.
func (s Screen) String() string {
	switch s {
	case ScreenStart:
		return "start"
	case ScreenPlaying:
		return "playing"
	case ScreenNameInput:
		return "nameInput"
	case ScreenRankings:
		return "rankings"
	default:
		return "unknown"
	}
}

// MarshalText encodes the screen by its wire name.
func (s Screen) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseScreen converts a wire name into a Screen.
func ParseScreen(name string) (Screen, bool) {
	for _, s := range []Screen{ScreenStart, ScreenPlaying, ScreenNameInput, ScreenRankings} {
		if s.String() == name {
			return s, true
		}
	}
	return ScreenStart, false
}

// Item identifies a consumable item slot.
type Item int

const (
	ItemShield Item = iota
	ItemSpeed
)

// String returns the wire name of the item.
func (i Item) String() string {
	switch i {
	case ItemShield:
		return "shield"
	case ItemSpeed:
		return "speed"
	default:
		return "unknown"
	}
}

// ParseItem converts a wire name into an Item.
func ParseItem(name string) (Item, bool) {
	switch name {
	case "shield":
		return ItemShield, true
	case "speed":
		return ItemSpeed, true
	default:
		return ItemShield, false
	}
}

// ObjectKind distinguishes falling objects.
type ObjectKind int

const (
	KindArrow ObjectKind = iota
	KindConfusion
	KindSlow
)

// String returns the wire name of the object kind.
func (k ObjectKind) String() string {
	switch k {
	case KindArrow:
		return "arrow"
	case KindConfusion:
		return "confusion"
	case KindSlow:
		return "slow"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by its wire name.
func (k ObjectKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Player is the controlled sprite. Y stays fixed during play.
type Player struct {
	ID   int       `json:"id"`
	Pos  core.Vec2 `json:"pos"`
	Size float64   `json:"size"`
}

// Object is a falling arrow or pickup.
type Object struct {
	ID   int        `json:"id"`
	Kind ObjectKind `json:"kind"`
	Pos  core.Vec2  `json:"pos"`
	VY   float64    `json:"vy"`
}

// Trail is a fading speed-boost particle.
type Trail struct {
	ID      int       `json:"id"`
	Pos     core.Vec2 `json:"pos"`
	Opacity float64   `json:"opacity"`
}

// ItemSlot tracks charges and the active window of an item.
type ItemSlot struct {
	Count     int  `json:"count"`
	Active    bool `json:"active"`
	Remaining int  `json:"remaining"`
}

// Items groups the player's item slots.
type Items struct {
	Shield ItemSlot `json:"shield"`
	Speed  ItemSlot `json:"speed"`
}

// Status is a timed flag.
type Status struct {
	Active    bool `json:"active"`
	Remaining int  `json:"remaining"`
}

// Statuses groups the timed player statuses.
type Statuses struct {
	Confused   Status `json:"confused"`
	Slowed     Status `json:"slowed"`
	Invincible Status `json:"invincible"`
}

// Input is the currently held movement intent.
type Input struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

// Snapshot is a deep copy of a session, safe to hand to other goroutines.
type Snapshot struct {
	Screen     Screen   `json:"screen"`
	Tick       uint64   `json:"tick"`
	Level      int      `json:"level"`
	Lives      int      `json:"lives"`
	Score      int      `json:"score"`
	FinalScore int      `json:"finalScore"`
	FieldW     float64  `json:"fieldW"`
	FieldH     float64  `json:"fieldH"`
	Player     Player   `json:"player"`
	Arrows     []Object `json:"arrows"`
	Pickups    []Object `json:"pickups"`
	Trails     []Trail  `json:"trails"`
	Items      Items    `json:"items"`
	Status     Statuses `json:"status"`
	HitGuard   int      `json:"hitGuard"`
}

// state is the mutable session owned by the Engine.
type state struct {
	screen     Screen
	tick       uint64
	level      int
	lives      int
	score      int
	finalScore int

	player  Player
	arrows  []Object
	pickups []Object
	trails  []Trail

	items    Items
	status   Statuses
	hitGuard int // remaining units; arrow collisions are skipped while > 0

	input  Input
	nextID int
}

func (s *state) id() int {
	s.nextID++
	return s.nextID
}

func (s *state) snapshot(fieldW, fieldH float64) Snapshot {
	return Snapshot{
		Screen:     s.screen,
		Tick:       s.tick,
		Level:      s.level,
		Lives:      s.lives,
		Score:      s.score,
		FinalScore: s.finalScore,
		FieldW:     fieldW,
		FieldH:     fieldH,
		Player:     s.player,
		Arrows:     append([]Object(nil), s.arrows...),
		Pickups:    append([]Object(nil), s.pickups...),
		Trails:     append([]Trail(nil), s.trails...),
		Items:      s.items,
		Status:     s.status,
		HitGuard:   s.hitGuard,
	}
}
