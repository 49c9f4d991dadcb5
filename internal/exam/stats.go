package exam

import (
	"math"

	"github.com/example/terve/pkg/models"
)

// trendSize is the number of latest attempts in a trend
const trendSize = 5

// LevelProgress summarizes the attempts at one target level
type LevelProgress struct {
	Attempts     int `json:"attempts"`
	BestScore    int `json:"bestScore"`
	AverageScore int `json:"averageScore"`
	Passed       int `json:"passed"`
}

// TrendPoint is one attempt in the recent trend
type TrendPoint struct {
	Date  string       `json:"date"`
	Score int          `json:"score"`
	Level models.Level `json:"level"`
}

// Stats summarizes all exam attempts of a learner
type Stats struct {
	TotalExams    int                            `json:"totalExams"`
	AverageScore  int                            `json:"averageScore"`
	LevelProgress map[models.Level]LevelProgress `json:"levelProgress"`
	RecentTrend   []TrendPoint                   `json:"recentTrend"`
}

// LevelAverage is the rounded average raw score of a target level
type LevelAverage struct {
	Average  int `json:"average"`
	Attempts int `json:"attempts"`
}

// Summarize computes statistics from results ordered newest first.
// Scores are percentages; the trend lists the latest attempts oldest first.
func Summarize(results []models.ExamResult) Stats {
	stats := Stats{
		TotalExams:    len(results),
		LevelProgress: make(map[models.Level]LevelProgress),
		RecentTrend:   make([]TrendPoint, 0, trendSize),
	}
	if len(results) == 0 {
		return stats
	}

	total := 0
	sums := make(map[models.Level]int)
	for _, r := range results {
		pct := r.Percentage()
		total += pct
		sums[r.TargetLevel] += pct

		lp := stats.LevelProgress[r.TargetLevel]
		lp.Attempts++
		if pct > lp.BestScore {
			lp.BestScore = pct
		}
		if r.Passed() {
			lp.Passed++
		}
		stats.LevelProgress[r.TargetLevel] = lp
	}
	stats.AverageScore = roundedMean(total, len(results))
	for level, lp := range stats.LevelProgress {
		lp.AverageScore = roundedMean(sums[level], lp.Attempts)
		stats.LevelProgress[level] = lp
	}

	n := trendSize
	if len(results) < n {
		n = len(results)
	}
	for i := n - 1; i >= 0; i-- {
		r := results[i]
		stats.RecentTrend = append(stats.RecentTrend, TrendPoint{
			Date:  r.CreatedAt.UTC().Format("2006-01-02"),
			Score: r.Percentage(),
			Level: r.TargetLevel,
		})
	}
	return stats
}

func roundedMean(sum, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}
