package zone

import "github.com/sells-group/field-allocator/internal/model"

// Partition groups sites by the first zone that contains them.
type Partition struct {
	ByZone  map[string][]model.Site
	Order   []string // zone ids in index order
	Outside []model.Site
}

// Partition assigns every site to its containing zone. Sites outside all
// zones are collected in Outside. Site order within each group is preserved.
func (idx *Index) Partition(sites []model.Site) Partition {
	p := Partition{
		ByZone: make(map[string][]model.Site),
		Order:  idx.IDs(),
	}
	for _, s := range sites {
		id, _, ok := idx.Locate(s.Location)
		if !ok {
			p.Outside = append(p.Outside, s)
			continue
		}
		p.ByZone[id] = append(p.ByZone[id], s)
	}
	return p
}

// Counts returns the number of sites per zone, including zones with none.
func (p Partition) Counts() map[string]int {
	counts := make(map[string]int, len(p.Order))
	for _, id := range p.Order {
		counts[id] = len(p.ByZone[id])
	}
	return counts
}
