package aod

import (
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"
)

// Tree names of the derived-data layout: one row per collision and one row
// per V0 pointing back at its collision.
const (
	CollisionTree = "O2stracollision"
	V0Tree        = "O2v0core"
)

type collisionRow struct {
	Index     int32   `groot:"fGlobalIndex"`
	Run       int32   `groot:"fRunNumber"`
	Timestamp int64   `groot:"fTimestamp"`
	PosX      float32 `groot:"fPosX"`
	PosY      float32 `groot:"fPosY"`
	PosZ      float32 `groot:"fPosZ"`
	CentFT0C  float32 `groot:"fCentFT0C"`
	Sel8      bool    `groot:"fSel8"`
	TrigSP    bool    `groot:"fTriggerEventSP"`
	RCTGood   bool    `groot:"fRCTGood"`
	Selection uint64  `groot:"fSelection"`
	Occupancy int32   `groot:"fTrackOccupancyInTimeRange"`
	QxA       float32 `groot:"fQxZDCA"`
	QyA       float32 `groot:"fQyZDCA"`
	QxC       float32 `groot:"fQxZDCC"`
	QyC       float32 `groot:"fQyZDCC"`
	PsiA      float32 `groot:"fPsiZDCA"`
	PsiC      float32 `groot:"fPsiZDCC"`
}

type v0Row struct {
	Collision int32   `groot:"fStraCollisionId"`
	ID        int32   `groot:"fGlobalIndex"`
	PxPos     float32 `groot:"fPxPos"`
	PyPos     float32 `groot:"fPyPos"`
	PzPos     float32 `groot:"fPzPos"`
	PxNeg     float32 `groot:"fPxNeg"`
	PyNeg     float32 `groot:"fPyNeg"`
	PzNeg     float32 `groot:"fPzNeg"`
	X         float32 `groot:"fX"`
	Y         float32 `groot:"fY"`
	Z         float32 `groot:"fZ"`
	DCAPos    float32 `groot:"fDCAPosToPV"`
	DCANeg    float32 `groot:"fDCANegToPV"`
	DCAV0     float32 `groot:"fDCAV0ToPV"`
	DCADau    float32 `groot:"fDCAV0Daughters"`
	CosPA     float32 `groot:"fV0CosPA"`
	PosRows   int32   `groot:"fPosTPCNClsCrossedRows"`
	PosFound  int32   `groot:"fPosTPCNClsFound"`
	PosRatio  float32 `groot:"fPosTPCCrossedRowsOverFindableCls"`
	PosNSPr   float32 `groot:"fPosTPCNSigmaPr"`
	PosNSPi   float32 `groot:"fPosTPCNSigmaPi"`
	NegRows   int32   `groot:"fNegTPCNClsCrossedRows"`
	NegFound  int32   `groot:"fNegTPCNClsFound"`
	NegRatio  float32 `groot:"fNegTPCCrossedRowsOverFindableCls"`
	NegNSPr   float32 `groot:"fNegTPCNSigmaPr"`
	NegNSPi   float32 `groot:"fNegTPCNSigmaPi"`
}

// ReadFile reads the collisions of a ROOT file and attaches every V0 to
// its collision. Events are returned in file order.
func ReadFile(fname string) ([]Event, error) {
	f, err := groot.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("aod: could not open %q: %w", fname, err)
	}
	defer f.Close()

	var (
		events []Event
		pos    = make(map[int]int)
		crow   collisionRow
		vrow   v0Row
	)

	err = readTree(f, CollisionTree, &crow, func() error {
		pos[int(crow.Index)] = len(events)
		events = append(events, crow.event())
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = readTree(f, V0Tree, &vrow, func() error {
		i, ok := pos[int(vrow.Collision)]
		if !ok {
			return fmt.Errorf("aod: v0 %d references unknown collision %d", vrow.ID, vrow.Collision)
		}
		events[i].V0s = append(events[i].V0s, vrow.v0())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func readTree(f *groot.File, name string, ptr any, fn func() error) error {
	o, err := f.Get(name)
	if err != nil {
		return fmt.Errorf("aod: could not retrieve tree %q: %w", name, err)
	}
	t, ok := o.(rtree.Tree)
	if !ok {
		return fmt.Errorf("aod: object %q is a %T, not a tree", name, o)
	}

	r, err := rtree.NewReader(t, rtree.ReadVarsFromStruct(ptr))
	if err != nil {
		return fmt.Errorf("aod: could not create reader for %q: %w", name, err)
	}
	defer r.Close()

	err = r.Read(func(rtree.RCtx) error { return fn() })
	if err != nil {
		return fmt.Errorf("aod: could not read tree %q: %w", name, err)
	}
	return nil
}

// WriteFile stores events in the layout read by ReadFile.
func WriteFile(fname string, events []Event) error {
	f, err := groot.Create(fname)
	if err != nil {
		return fmt.Errorf("aod: could not create %q: %w", fname, err)
	}

	var crow collisionRow
	err = writeTree(f, CollisionTree, &crow, len(events), func(i int) {
		crow = newCollisionRow(&events[i])
	})
	if err != nil {
		f.Close()
		return err
	}

	var (
		vrow v0Row
		refs [][2]int
	)
	for i := range events {
		for j := range events[i].V0s {
			refs = append(refs, [2]int{i, j})
		}
	}
	err = writeTree(f, V0Tree, &vrow, len(refs), func(k int) {
		ev := &events[refs[k][0]]
		vrow = newV0Row(ev.Index, &ev.V0s[refs[k][1]])
	})
	if err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("aod: could not close %q: %w", fname, err)
	}
	return nil
}

func writeTree(f *groot.File, name string, ptr any, n int, set func(i int)) error {
	w, err := rtree.NewWriter(f, name, rtree.WriteVarsFromStruct(ptr))
	if err != nil {
		return fmt.Errorf("aod: could not create tree %q: %w", name, err)
	}
	for i := 0; i < n; i++ {
		set(i)
		if _, err := w.Write(); err != nil {
			w.Close()
			return fmt.Errorf("aod: could not write entry %d of %q: %w", i, name, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("aod: could not close tree %q: %w", name, err)
	}
	return nil
}

func (r *collisionRow) event() Event {
	return Event{
		Index:          int(r.Index),
		Run:            int(r.Run),
		Timestamp:      r.Timestamp,
		PosX:           float64(r.PosX),
		PosY:           float64(r.PosY),
		PosZ:           float64(r.PosZ),
		CentFT0C:       float64(r.CentFT0C),
		Sel8:           r.Sel8,
		TriggerEventSP: r.TrigSP,
		RCTGood:        r.RCTGood,
		Selection:      r.Selection,
		Occupancy:      int(r.Occupancy),
		QxA:            float64(r.QxA),
		QyA:            float64(r.QyA),
		QxC:            float64(r.QxC),
		QyC:            float64(r.QyC),
		PsiA:           float64(r.PsiA),
		PsiC:           float64(r.PsiC),
	}
}

func newCollisionRow(ev *Event) collisionRow {
	return collisionRow{
		Index:     int32(ev.Index),
		Run:       int32(ev.Run),
		Timestamp: ev.Timestamp,
		PosX:      float32(ev.PosX),
		PosY:      float32(ev.PosY),
		PosZ:      float32(ev.PosZ),
		CentFT0C:  float32(ev.CentFT0C),
		Sel8:      ev.Sel8,
		TrigSP:    ev.TriggerEventSP,
		RCTGood:   ev.RCTGood,
		Selection: ev.Selection,
		Occupancy: int32(ev.Occupancy),
		QxA:       float32(ev.QxA),
		QyA:       float32(ev.QyA),
		QxC:       float32(ev.QxC),
		QyC:       float32(ev.QyC),
		PsiA:      float32(ev.PsiA),
		PsiC:      float32(ev.PsiC),
	}
}

func (r *v0Row) v0() V0 {
	return V0{
		ID:             int(r.ID),
		Collision:      int(r.Collision),
		PxPos:          float64(r.PxPos),
		PyPos:          float64(r.PyPos),
		PzPos:          float64(r.PzPos),
		PxNeg:          float64(r.PxNeg),
		PyNeg:          float64(r.PyNeg),
		PzNeg:          float64(r.PzNeg),
		X:              float64(r.X),
		Y:              float64(r.Y),
		Z:              float64(r.Z),
		DCAPosToPV:     float64(r.DCAPos),
		DCANegToPV:     float64(r.DCANeg),
		DCAV0ToPV:      float64(r.DCAV0),
		DCAV0Daughters: float64(r.DCADau),
		CosPA:          float64(r.CosPA),
		Pos: Track{
			CrossedRows:         int(r.PosRows),
			FoundClusters:       int(r.PosFound),
			CrossedOverFindable: float64(r.PosRatio),
			NSigmaPr:            float64(r.PosNSPr),
			NSigmaPi:            float64(r.PosNSPi),
		},
		Neg: Track{
			CrossedRows:         int(r.NegRows),
			FoundClusters:       int(r.NegFound),
			CrossedOverFindable: float64(r.NegRatio),
			NSigmaPr:            float64(r.NegNSPr),
			NSigmaPi:            float64(r.NegNSPi),
		},
	}
}

func newV0Row(collision int, v *V0) v0Row {
	return v0Row{
		Collision: int32(collision),
		ID:        int32(v.ID),
		PxPos:     float32(v.PxPos),
		PyPos:     float32(v.PyPos),
		PzPos:     float32(v.PzPos),
		PxNeg:     float32(v.PxNeg),
		PyNeg:     float32(v.PyNeg),
		PzNeg:     float32(v.PzNeg),
		X:         float32(v.X),
		Y:         float32(v.Y),
		Z:         float32(v.Z),
		DCAPos:    float32(v.DCAPosToPV),
		DCANeg:    float32(v.DCANegToPV),
		DCAV0:     float32(v.DCAV0ToPV),
		DCADau:    float32(v.DCAV0Daughters),
		CosPA:     float32(v.CosPA),
		PosRows:   int32(v.Pos.CrossedRows),
		PosFound:  int32(v.Pos.FoundClusters),
		PosRatio:  float32(v.Pos.CrossedOverFindable),
		PosNSPr:   float32(v.Pos.NSigmaPr),
		PosNSPi:   float32(v.Pos.NSigmaPi),
		NegRows:   int32(v.Neg.CrossedRows),
		NegFound:  int32(v.Neg.FoundClusters),
		NegRatio:  float32(v.Neg.CrossedOverFindable),
		NegNSPr:   float32(v.Neg.NSigmaPr),
		NegNSPi:   float32(v.Neg.NSigmaPi),
	}
}
