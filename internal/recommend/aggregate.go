package recommend

import (
	"math"
	"sort"

	"trail-recommender/internal/domain"
)

type mountainKey struct {
	id, name string
}

// Aggregate groups scored trails by mountain in first-seen order. The best
// trail is the first one reaching the mountain's max score.
func Aggregate(trails []domain.ScoredTrail) []domain.MountainSummary {
	index := make(map[mountainKey]int)
	var out []domain.MountainSummary
	var sums, safety []float64
	for _, t := range trails {
		k := mountainKey{t.MountainID, t.MountainName}
		i, seen := index[k]
		if !seen {
			i = len(out)
			index[k] = i
			out = append(out, domain.MountainSummary{
				MountainID:    t.MountainID,
				MountainName:  t.MountainName,
				MaxScore:      t.Score,
				BestTrail:     t.TrailName,
				MinDifficulty: t.Difficulty,
				MaxDifficulty: t.Difficulty,
				Elevation:     t.Elevation,
				Location:      t.MountainLocation,
				Description:   t.MountainDescription,
				ThumbnailURL:  t.ThumbnailURL,
			})
			sums = append(sums, 0)
			safety = append(safety, 0)
		} else if t.Score > out[i].MaxScore {
			out[i].MaxScore = t.Score
			out[i].BestTrail = t.TrailName
		}
		m := &out[i]
		m.TrailCount++
		m.MinDifficulty = math.Min(m.MinDifficulty, t.Difficulty)
		m.MaxDifficulty = math.Max(m.MaxDifficulty, t.Difficulty)
		sums[i] += t.Score
		safety[i] += t.Safety
	}
	for i := range out {
		n := float64(out[i].TrailCount)
		out[i].MeanScore = sums[i] / n
		out[i].MeanSafety = safety[i] / n
		out[i].Category = Categorize(out[i].MaxScore)
	}
	return out
}

// RankMountains sorts by max score descending, keeping input order on ties.
func RankMountains(ms []domain.MountainSummary) {
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].MaxScore > ms[j].MaxScore })
}

// RankTrails sorts by final score descending, keeping input order on ties.
func RankTrails(ts []domain.ScoredTrail) {
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].Score > ts[j].Score })
}
