package driver

// Options configures driver-wide policy decisions that aren't otherwise
// pinned down by the bytecode format itself.
type Options struct {
	// KeepVibratoOnTie keeps the vibrato LFO running across a tied note
	// instead of restarting it. Defaults to true.
	KeepVibratoOnTie bool
}

// DefaultOptions matches the binding resolution of the open question on
// vibrato-across-ties: keep running.
func DefaultOptions() Options {
	return Options{KeepVibratoOnTie: true}
}
