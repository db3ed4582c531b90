package cache

// LayoutKeyOpts are the solver inputs, besides the items, that determine a
// layout.
type LayoutKeyOpts struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	TopMargin  float64 `json:"top_margin"`
	Iterations int     `json:"iterations"`
	Gravity    float64 `json:"gravity"`
	Repulsion  float64 `json:"repulsion"`
	Damping    float64 `json:"damping"`
	Spacing    float64 `json:"spacing"`
	Jitter     float64 `json:"jitter"`
	MaxSpeed   float64 `json:"max_speed"`
	Seed       uint64  `json:"seed"`
}

// ArtifactKeyOpts identify a rendered artifact of a board frame.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Labels bool   `json:"labels"`
}

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey returns the key for a solved layout of the given items hash.
	LayoutKey(itemsHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key for a rendered frame.
	ArtifactKey(frameHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(itemsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", itemsHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(frameHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", frameHash, opts)
}
