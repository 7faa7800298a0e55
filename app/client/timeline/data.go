package timeline

// Entry is one timeline line.
type Entry struct {
	ID      string  `json:"id"`
	Kind    string  `json:"kind"`
	Context string  `json:"context"`
	Tooltip string  `json:"tooltip"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	PairID  uint64  `json:"pair_id"`
}
