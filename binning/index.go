package binning

// Bin identifies a (vertex, centrality) cell of an Index.
type Bin int

// NoBin is returned for events outside every configured bucket. It is not
// a valid bin and must never be used as one.
const NoBin Bin = -1

// Index maps an event's (vertex z, centrality) pair onto a Bin.
type Index struct {
	vertex     Axis
	centrality Axis
}

func NewIndex(vertex, centrality Axis) (Index, error) {
	if err := vertex.Validate(); err != nil {
		return Index{}, err
	}
	if err := centrality.Validate(); err != nil {
		return Index{}, err
	}
	return Index{vertex: vertex, centrality: centrality}, nil
}

// NBins returns the number of distinct bins, vertex buckets times
// centrality buckets.
func (idx Index) NBins() int {
	return idx.vertex.NBins() * idx.centrality.NBins()
}

// BinOf returns the bin of (vz, cent), or NoBin if either value falls
// outside its axis.
func (idx Index) BinOf(vz, cent float64) Bin {
	iv := idx.vertex.FindBin(vz)
	if iv < 0 {
		return NoBin
	}
	ic := idx.centrality.FindBin(cent)
	if ic < 0 {
		return NoBin
	}
	return Bin(iv*idx.centrality.NBins() + ic)
}
