package assets

// Paths of the resources the game requires, relative to the asset root.
const (
	BackgroundPath = "sprites/background.yaml"
	ObstaclePath   = "sprites/obstacle.yaml"
	GroundPath     = "sprites/ground.yaml"
	CharactersPath = "sprites/characters.yaml"
	DigitsPath     = "fonts/digits.yaml"
)

// GameAssets holds the handles for every resource a session needs.
type GameAssets struct {
	Background Handle
	Obstacle   Handle
	Ground     Handle
	Characters Handle
	Digits     Handle
}

// RequestGameAssets asks srv for all game resources at once.
func RequestGameAssets(srv *Server) GameAssets {
	return GameAssets{
		Background: srv.Load(BackgroundPath, DecodeSprite),
		Obstacle:   srv.Load(ObstaclePath, DecodeSprite),
		Ground:     srv.Load(GroundPath, DecodeSprite),
		Characters: srv.Load(CharactersPath, DecodeSprite),
		Digits:     srv.Load(DigitsPath, DecodeFont),
	}
}

// Handles lists the handles in a stable order.
func (g GameAssets) Handles() []Handle {
	return []Handle{g.Background, g.Obstacle, g.Ground, g.Characters, g.Digits}
}

// Resolved is the decoded asset set used for drawing.
type Resolved struct {
	Background Sprite
	Obstacle   Sprite
	Ground     Sprite
	Player     Sprite
	Digits     Font
}

// Resolve collects decoded values. It returns false until every handle is Loaded.
func (g GameAssets) Resolve(srv *Server) (Resolved, bool) {
	var r Resolved
	var ok bool
	sprite := func(h Handle, dst *Sprite) bool {
		v, loaded := srv.Value(h)
		if !loaded {
			return false
		}
		*dst, ok = v.(Sprite)
		return ok
	}
	if !sprite(g.Background, &r.Background) ||
		!sprite(g.Obstacle, &r.Obstacle) ||
		!sprite(g.Ground, &r.Ground) ||
		!sprite(g.Characters, &r.Player) {
		return Resolved{}, false
	}
	v, loaded := srv.Value(g.Digits)
	if !loaded {
		return Resolved{}, false
	}
	r.Digits, ok = v.(Font)
	return r, ok
}

// Bundle ties a server to the game asset handles it was asked for.
type Bundle struct {
	*Server
	GameAssets
}

// LoadBundle requests every game asset from srv.
func LoadBundle(srv *Server) *Bundle {
	return &Bundle{Server: srv, GameAssets: RequestGameAssets(srv)}
}

// Resolve returns the decoded assets once all of them are loaded.
func (b *Bundle) Resolve() (Resolved, bool) {
	return b.GameAssets.Resolve(b.Server)
}
