// Package extract finds dominant colours in an image by k-means clustering
// in Oklab. Results are deterministic for a given image and count.
package extract

import (
	"cmp"
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/jmylchreest/tincture/internal/colour"
	"github.com/jmylchreest/tincture/internal/mix"
)

// MaxColours bounds the number of clusters.
const MaxColours = 64

// Cluster is one dominant colour and the share of sampled pixels it covers.
type Cluster struct {
	Colour colour.RGB01 `json:"-"`
	Hex    string       `json:"hex"`
	Weight float64      `json:"weight"`
}

// Extractor clusters image pixels in Oklab.
type Extractor struct {
	maxIterations int
	convergence   float64
	maxSamples    int
}

// NewExtractor creates an Extractor with default settings.
func NewExtractor() *Extractor {
	return &Extractor{
		maxIterations: 30,
		convergence:   1e-4,
		maxSamples:    4096,
	}
}

// Extract returns up to count clusters ordered by weight, heaviest first.
// Images with fewer distinct colours yield fewer clusters.
func (e *Extractor) Extract(img image.Image, count int) ([]Cluster, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 || count > MaxColours {
		return nil, fmt.Errorf("colour count must be between 1 and %d, got %d", MaxColours, count)
	}

	points := e.sample(img)
	if len(points) == 0 {
		return nil, fmt.Errorf("no opaque pixels found in image")
	}

	centroids := seedCentroids(points, count)
	assignments := make([]int, len(points))
	for range e.maxIterations {
		for i, p := range points {
			assignments[i] = nearest(p, centroids)
		}
		next := recalculate(points, assignments, centroids)
		moved := 0.0
		for i := range centroids {
			moved = math.Max(moved, distance(centroids[i], next[i]))
		}
		centroids = next
		if moved < e.convergence {
			break
		}
	}
	for i, p := range points {
		assignments[i] = nearest(p, centroids)
	}

	weights := make([]float64, len(centroids))
	for _, a := range assignments {
		weights[a]++
	}

	clusters := make([]Cluster, 0, len(centroids))
	for i, c := range centroids {
		if weights[i] == 0 {
			continue
		}
		rgb := mix.Encode(mix.ExactTransfer{}, c.Linear())
		clusters = append(clusters, Cluster{
			Colour: rgb,
			Hex:    rgb.Hex(),
			Weight: weights[i] / float64(len(points)),
		})
	}
	slices.SortStableFunc(clusters, func(a, b Cluster) int {
		return cmp.Compare(b.Weight, a.Weight)
	})
	return clusters, nil
}

// sample converts a grid of opaque pixels to Oklab.
func (e *Extractor) sample(img image.Image) []mix.Oklab {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	step := max(int(math.Sqrt(float64(total)/float64(e.maxSamples))), 1)

	points := make([]mix.Oklab, 0, min(total, e.maxSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A < 128 {
				continue
			}
			rgb := colour.RGB{R: c.R, G: c.G, B: c.B}.RGB01()
			points = append(points, mix.OklabFromLinear(mix.Linearise(mix.ExactTransfer{}, rgb)))
		}
	}
	return points
}

// seedCentroids picks the first point, then repeatedly the point farthest
// from every chosen centroid. Duplicates are never chosen, so fewer than k
// centroids are returned when the image has fewer distinct colours.
func seedCentroids(points []mix.Oklab, k int) []mix.Oklab {
	centroids := []mix.Oklab{points[0]}
	dist := make([]float64, len(points))
	for i, p := range points {
		dist[i] = distance(p, points[0])
	}
	for len(centroids) < k {
		far, best := -1, 0.0
		for i, d := range dist {
			if d > best {
				far, best = i, d
			}
		}
		if far < 0 {
			break
		}
		centroids = append(centroids, points[far])
		for i, p := range points {
			dist[i] = math.Min(dist[i], distance(p, points[far]))
		}
	}
	return centroids
}

func nearest(p mix.Oklab, centroids []mix.Oklab) int {
	best, bestDist := 0, math.Inf(1)
	for i, c := range centroids {
		if d := distance(p, c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// recalculate moves each centroid to the mean of its points. Empty clusters
// keep their previous position.
func recalculate(points []mix.Oklab, assignments []int, prev []mix.Oklab) []mix.Oklab {
	sums := make([]mix.Oklab, len(prev))
	counts := make([]int, len(prev))
	for i, p := range points {
		a := assignments[i]
		sums[a].L += p.L
		sums[a].A += p.A
		sums[a].B += p.B
		counts[a]++
	}
	next := make([]mix.Oklab, len(prev))
	for i := range next {
		if counts[i] == 0 {
			next[i] = prev[i]
			continue
		}
		n := float64(counts[i])
		next[i] = mix.Oklab{L: sums[i].L / n, A: sums[i].A / n, B: sums[i].B / n}
	}
	return next
}

func distance(a, b mix.Oklab) float64 {
	dl, da, db := a.L-b.L, a.A-b.A, a.B-b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// MostDistinct returns the pair of clusters farthest apart in Oklab. With a
// single cluster both results are that cluster.
func MostDistinct(clusters []Cluster) (Cluster, Cluster, error) {
	if len(clusters) == 0 {
		return Cluster{}, Cluster{}, fmt.Errorf("no clusters to choose from")
	}
	toLab := func(c Cluster) mix.Oklab {
		return mix.OklabFromLinear(mix.Linearise(mix.ExactTransfer{}, c.Colour))
	}
	bi, bj, best := 0, 0, -1.0
	for i := range clusters {
		for j := i + 1; j < len(clusters); j++ {
			if d := distance(toLab(clusters[i]), toLab(clusters[j])); d > best {
				bi, bj, best = i, j, d
			}
		}
	}
	return clusters[bi], clusters[bj], nil
}
