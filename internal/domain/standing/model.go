package standing

import "sort"

// Standing is a member's aggregate pick record within one league. Wins
// are worth one point, pushes half.
type Standing struct {
	LeagueID string
	UserID   string
	Wins     int
	Losses   int
	Pushes   int
	Points   float64
	Rank     int
}

// Rank orders standings by points descending (wins break ties) and
// assigns dense ranks: equal points share a rank, the next distinct
// total gets rank+1.
func Rank(items []Standing) []Standing {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Points != items[j].Points {
			return items[i].Points > items[j].Points
		}
		if items[i].Wins != items[j].Wins {
			return items[i].Wins > items[j].Wins
		}
		return items[i].UserID < items[j].UserID
	})

	lastPoints := 0.0
	currentRank := 0
	for idx := range items {
		if idx == 0 || items[idx].Points != lastPoints {
			currentRank++
			lastPoints = items[idx].Points
		}
		items[idx].Rank = currentRank
	}

	return items
}
