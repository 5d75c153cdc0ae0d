package recommend

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/moodbridge/go-mood-bridge/internal/catalog"
)

// DefaultPoolSize bounds the candidate set per target point independently of
// catalog size, keeping selection cost constant as the catalog grows.
const DefaultPoolSize = 50

// Candidate is one nearest-neighbor match for a target point.
type Candidate struct {
	Track    catalog.Track
	Position int       // catalog order, used as the stable tie-break
	Point    []float64 // standardized coordinates
	Distance float64   // Euclidean distance in standardized space
}

// Index is a k-d tree over the standardized feature matrix. Read-only after
// construction; concurrent queries need no coordination.
type Index struct {
	store *catalog.Store
	tree  *kdtree.Tree
}

// NewIndex builds the spatial index for a feature store.
func NewIndex(store *catalog.Store) *Index {
	points := make(trackPoints, store.Len())
	for i := 0; i < store.Len(); i++ {
		points[i] = trackPoint{vec: store.StandardizedPoint(i), position: i}
	}
	return &Index{
		store: store,
		tree:  kdtree.New(points, false),
	}
}

// Query standardizes a raw affect target and returns up to k candidates
// sorted ascending by distance, with equal distances broken by catalog
// order. Fewer than k matchable tracks returns all of them.
func (ix *Index) Query(rawTarget []float64, k int) []Candidate {
	if k > ix.store.Len() {
		k = ix.store.Len()
	}
	if k < 1 {
		return nil
	}

	q := trackPoint{vec: ix.store.Standardize(rawTarget), position: -1}
	keeper := kdtree.NewNKeeper(k)
	ix.tree.NearestSet(keeper, q)

	candidates := make([]Candidate, 0, k)
	for _, cd := range keeper.Heap {
		tp, ok := cd.Comparable.(trackPoint)
		if !ok {
			continue // heap sentinel
		}
		candidates = append(candidates, Candidate{
			Track:    ix.store.Track(tp.position),
			Position: tp.position,
			Point:    tp.vec,
			Distance: math.Sqrt(cd.Dist),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Distance != candidates[j].Distance {
			return candidates[i].Distance < candidates[j].Distance
		}
		return candidates[i].Position < candidates[j].Position
	})
	return candidates
}

// trackPoint adapts one standardized track vector to the kdtree interfaces.
type trackPoint struct {
	vec      []float64
	position int
}

func (p trackPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(trackPoint)
	return p.vec[d] - q.vec[d]
}

func (p trackPoint) Dims() int { return len(p.vec) }

// Distance returns the squared Euclidean distance, per the kdtree contract.
func (p trackPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(trackPoint)
	var sum float64
	for d := range p.vec {
		diff := p.vec[d] - q.vec[d]
		sum += diff * diff
	}
	return sum
}

type trackPoints []trackPoint

func (p trackPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p trackPoints) Len() int                      { return len(p) }
func (p trackPoints) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}
func (p trackPoints) Pivot(d kdtree.Dim) int {
	return trackPlane{trackPoints: p, Dim: d}.pivot()
}

// trackPlane sorts trackPoints along one dimension for tree construction.
type trackPlane struct {
	trackPoints
	kdtree.Dim
}

func (p trackPlane) Less(i, j int) bool {
	return p.trackPoints[i].vec[p.Dim] < p.trackPoints[j].vec[p.Dim]
}
func (p trackPlane) Swap(i, j int) {
	p.trackPoints[i], p.trackPoints[j] = p.trackPoints[j], p.trackPoints[i]
}
func (p trackPlane) Slice(start, end int) kdtree.SortSlicer {
	p.trackPoints = p.trackPoints[start:end]
	return p
}
func (p trackPlane) pivot() int {
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}
