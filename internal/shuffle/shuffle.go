// Package shuffle implements an interleaving queue shuffle.
//
// A uniform random permutation tends to place tracks by the same artist next
// to each other, which feels wrong to listeners. This shuffle spreads tracks
// out instead: tracks from one album are spread across the artist's tracks,
// and each artist's tracks are spread across the full queue, so consecutive
// tracks by the same artist only happen when the queue composition forces
// them.
package shuffle

import (
	"math/rand/v2"
	"slices"
)

// Key identifies the album and artist of a queued track. Tracks on the same
// album must share the same AlbumID. The artist of an album is taken from the
// first track seen for it.
type Key struct {
	AlbumID int64
	Artist  string
}

// Order returns a permutation of indices into keys such that playing tracks
// in the returned order interleaves artists and albums. The permutation is
// deterministic for a given rng state.
func Order(rng *rand.Rand, keys []Key) []int {
	// Partition tracks into albums. Insertion order is tracked so the result
	// depends only on the rng, not on map iteration order.
	albums := make(map[int64][]int)
	artistOf := make(map[int64]string)
	var albumIDs []int64
	for i, k := range keys {
		if _, ok := albums[k.AlbumID]; !ok {
			albumIDs = append(albumIDs, k.AlbumID)
			artistOf[k.AlbumID] = k.Artist
		}
		albums[k.AlbumID] = append(albums[k.AlbumID], i)
	}

	// Shuffle within each album. The interleaving below preserves the
	// relative order of tracks in a partition, so this is the only point
	// where tracks from one album are reordered against each other.
	for _, id := range albumIDs {
		tracks := albums[id]
		rng.Shuffle(len(tracks), func(a, b int) {
			tracks[a], tracks[b] = tracks[b], tracks[a]
		})
	}

	// Group album partitions per artist, then interleave each artist's
	// albums into a single partition, then interleave the artists.
	grouped := make(map[string][][]int)
	var artists []string
	for _, id := range albumIDs {
		artist := artistOf[id]
		if _, ok := grouped[artist]; !ok {
			artists = append(artists, artist)
		}
		grouped[artist] = append(grouped[artist], albums[id])
	}

	partitions := make([][]int, 0, len(artists))
	for _, artist := range artists {
		partitions = append(partitions, interleave(rng, grouped[artist]))
	}

	return interleave(rng, partitions)
}

// interleave merges partitions into one slice, spreading the elements of
// smaller partitions as separators between spans of larger ones. The relative
// order within each partition is preserved.
func interleave(rng *rand.Rand, partitions [][]int) []int {
	// Shuffle first, then stable-sort ascending by length, so equally sized
	// partitions merge in random order.
	rng.Shuffle(len(partitions), func(a, b int) {
		partitions[a], partitions[b] = partitions[b], partitions[a]
	})
	slices.SortStableFunc(partitions, func(a, b []int) int {
		return len(a) - len(b)
	})

	var result []int
	for _, partition := range partitions {
		long, short := result, partition
		if len(long) < len(short) || (len(long) == len(short) && rng.IntN(2) == 0) {
			long, short = short, long
		}
		if len(long) == 0 {
			continue
		}

		// Cut the long side into spans, one more span than separators when
		// the lengths allow, so the merge can both start and end with a
		// span. Some spans are one element longer; shuffle the lengths so
		// the longer spans land in random places.
		nSpans := min(len(short)+1, len(long))
		spanLen := len(long) / nSpans
		remainder := len(long) - spanLen*nSpans
		spanLens := make([]int, nSpans)
		for i := range spanLens {
			if i < remainder {
				spanLens[i] = spanLen + 1
			} else {
				spanLens[i] = spanLen
			}
		}
		rng.Shuffle(len(spanLens), func(a, b int) {
			spanLens[a], spanLens[b] = spanLens[b], spanLens[a]
		})
		if nSpans > len(short) {
			spanLens = spanLens[:len(spanLens)-1]
		}

		merged := make([]int, 0, len(long)+len(short))
		spans, seps := long, short
		for _, n := range spanLens {
			merged = append(merged, spans[:n]...)
			merged = append(merged, seps[0])
			spans = spans[n:]
			seps = seps[1:]
		}
		merged = append(merged, spans...)
		result = merged
	}
	return result
}
