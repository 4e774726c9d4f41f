package engine

import (
	"sort"

	"sales-analytics/pkg/models"
)

// ProductAffinity computes co-occurrence metrics for product pairs bought in
// the same order. Pairs are canonical (smaller id first) and built from a
// strictly increasing id walk, so (A,A) and mirrored (B,A) duplicates cannot
// occur. Pairs below MinPairCount or MinConfidence are dropped as noise.
func ProductAffinity(items []models.OrderItem, p models.Params) ([]models.AffinityPair, QualityReport) {
	var q QualityReport

	// Baskets: distinct products per order. Quantity is irrelevant here and
	// repeated lines for the same product must not inflate counts.
	baskets := make(map[uint64]map[uint64]struct{})
	for _, it := range items {
		q.read()
		if it.OrderID == 0 || it.ProductID == 0 {
			q.exclude("missing order id or product id")
			continue
		}
		b := baskets[it.OrderID]
		if b == nil {
			b = make(map[uint64]struct{})
			baskets[it.OrderID] = b
		}
		b[it.ProductID] = struct{}{}
	}

	totalOrders := len(baskets)
	ordersWith := make(map[uint64]int) // orders containing the product
	type key struct{ a, b uint64 }
	pairCount := make(map[key]int)
	for _, b := range baskets {
		ids := make([]uint64, 0, len(b))
		for id := range b {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for i, id := range ids {
			ordersWith[id]++
			for _, other := range ids[i+1:] {
				pairCount[key{a: id, b: other}]++
			}
		}
	}

	// Denominators are always positive for an emitted pair: the pair's
	// existence implies at least one order containing each product.
	out := make([]models.AffinityPair, 0, len(pairCount))
	for k, n := range pairCount {
		if n < p.MinPairCount {
			continue
		}
		confidence := float64(n) / float64(ordersWith[k.a])
		if confidence < p.MinConfidence {
			continue
		}
		expected := float64(ordersWith[k.a]) * float64(ordersWith[k.b]) / float64(totalOrders)
		out = append(out, models.AffinityPair{
			ProductA:   k.a,
			ProductB:   k.b,
			PairCount:  n,
			Support:    float64(n) / float64(totalOrders),
			Confidence: confidence,
			Lift:       float64(n) / expected,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductA != out[j].ProductA {
			return out[i].ProductA < out[j].ProductA
		}
		return out[i].ProductB < out[j].ProductB
	})
	return out, q
}
