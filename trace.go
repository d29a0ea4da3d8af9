package aes

// TraceEntry records the cipher state immediately after one round stage.
// Entries exist for visualization and debugging; production callers simply
// pass a nil TraceFunc.
type TraceEntry struct {
	// Round is the round the stage belongs to. On encryption round 0 is
	// the initial key addition; on decryption rounds count down from Nr.
	Round int

	// Op is the stage label, e.g. "SubBytes" or "Initial AddRoundKey".
	Op string

	// State is the 4x4 state after the stage, flattened column-major
	// (the same byte order blocks travel in).
	State [BlockSize]byte
}

// TraceFunc observes round stages during block encryption or decryption.
// A nil TraceFunc disables tracing entirely; no per-entry work happens.
type TraceFunc func(TraceEntry)

// TraceRecorder collects every observed entry in order. Its Observe method
// is the TraceFunc to hand to the traced operations. A recorder is local to
// one call chain and not safe for concurrent use.
type TraceRecorder struct {
	Entries []TraceEntry
}

// Observe appends e to the recording.
func (r *TraceRecorder) Observe(e TraceEntry) {
	r.Entries = append(r.Entries, e)
}
