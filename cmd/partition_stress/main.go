// Stress test comparing BVH partition queries against a brute force triangle soup
package main

import (
	"fmt"
	"math/rand"
	"time"

	"ratarch/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	// Boxes per level, 12 triangles each
	testCounts := []int{10, 50, 100, 500, 1000, 2000}

	for _, count := range testCounts {
		testQueries(count)
	}
}

func testQueries(count int) {
	rng := rand.New(rand.NewSource(42)) // Consistent results

	// Spread boxes so density stays roughly constant
	spawnSize := float32(20.0) + float32(count)/5.0

	var tris []physics.Triangle
	for i := 0; i < count; i++ {
		center := rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: rng.Float32() * 4,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		size := rl.Vector3{X: 1 + rng.Float32()*3, Y: 0.5 + rng.Float32(), Z: 1 + rng.Float32()*3}
		rotation := rl.Vector3{Y: rng.Float32() * 360}
		tris = append(tris, physics.NewBoxMesh("box", center, size, rotation).Triangles...)
	}

	queries := make([]physics.Capsule, 1000)
	for i := range queries {
		base := rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: rng.Float32() * 5,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		queries[i] = physics.NewCapsule(base, rl.Vector3Add(base, rl.Vector3{Y: 0.65}), 0.35)
	}

	// Build
	buildStart := time.Now()
	bvh := physics.BuildPartition(tris)
	buildTime := time.Since(buildStart)
	soup := physics.Soup(tris)

	bvhTime, bvhHits := timeQueries(bvh, queries)
	soupTime, soupHits := timeQueries(soup, queries)

	speedup := float64(soupTime) / float64(bvhTime)

	fmt.Printf("%6d tris: build %8v | BVH %8v (%4d hits) | soup %10v (%4d hits) | %.1fx speedup\n",
		len(tris), buildTime.Round(time.Microsecond),
		bvhTime.Round(time.Microsecond), bvhHits,
		soupTime.Round(time.Microsecond), soupHits, speedup)
}

func timeQueries(q physics.Querier, queries []physics.Capsule) (time.Duration, int) {
	// Warm up
	for _, c := range queries {
		q.IntersectCapsule(c)
	}

	const iterations = 10
	start := time.Now()
	hits := 0
	for iter := 0; iter < iterations; iter++ {
		hits = 0
		for _, c := range queries {
			if _, ok := q.IntersectCapsule(c); ok {
				hits++
			}
		}
	}
	return time.Since(start) / iterations, hits
}
