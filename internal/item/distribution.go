package item

// Distribution builds the prefix sums used for weighted selection. The
// result has len(weights)+1 entries and starts at 0; bucket j spans
// [dist[j], dist[j+1]). A weight of -1 yields an empty bucket.
func Distribution(weights []int) []int {
	dist := make([]int, len(weights)+1)
	for i, w := range weights {
		if w == -1 {
			dist[i+1] = dist[i]
			continue
		}
		dist[i+1] = dist[i] + w
	}
	return dist
}

// Bucket returns the index of the first bucket whose upper bound exceeds
// draw, or -1 if draw lies past the last bucket.
func Bucket(dist []int, draw int) int {
	for j := 1; j < len(dist); j++ {
		if draw < dist[j] {
			return j - 1
		}
	}
	return -1
}
