package cache

// Keyer builds cache keys.
type Keyer interface {
	// CompactKey identifies the compaction of a layout with the given options.
	CompactKey(layoutHash string, opts CompactKeyOpts) string
}

// CompactKeyOpts are the options that change a compaction result.
type CompactKeyOpts struct {
	VerticalCompact bool `json:"vertical_compact"`
	Cols            int  `json:"cols"`
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// CompactKey returns "compact:<sha256(layoutHash, opts)>".
func (DefaultKeyer) CompactKey(layoutHash string, opts CompactKeyOpts) string {
	return hashKey("compact", layoutHash, opts)
}
