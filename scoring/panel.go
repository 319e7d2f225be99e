package scoring

import (
	"sort"

	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

// PanelEntry is a contestant whose score every judge has finalized.
type PanelEntry struct {
	Contestant   *storage.Contestant `json:"contestant"`
	AverageScore float64             `json:"averageScore"`
	JudgeCount   int                 `json:"judgeCount"`
}

// PanelResult is the judges' own podium for a category.
type PanelResult struct {
	CategoryID       string       `json:"categoryId"`
	Results          []PanelEntry `json:"results"`
	AllJudged        bool         `json:"allJudged"`
	TotalContestants int          `json:"totalContestants"`
	TotalJudges      int          `json:"totalJudges"`
}

const panelPodiumSize = 3

// JudgePanel ranks a category by the average of finalized judge totals only. The top
// three are returned once every judge in judgeIDs has finalized every contestant;
// until then Results is empty. Without judges nothing counts as judged.
func JudgePanel(categoryID string, contestants []*storage.Contestant, judgeIDs []string, doc *storage.ScoresDocument) PanelResult {
	result := PanelResult{
		CategoryID:       categoryID,
		Results:          []PanelEntry{},
		TotalContestants: len(contestants),
		TotalJudges:      len(judgeIDs),
	}
	if len(judgeIDs) == 0 {
		return result
	}

	complete := make([]PanelEntry, 0, len(contestants))
	for _, contestant := range contestants {
		var sum float64
		finalized := 0
		for _, judgeID := range judgeIDs {
			s := doc.Score(contestant.ID, judgeID)
			if s == nil || !s.Finalized {
				continue
			}
			sum += s.TotalScore
			finalized++
		}
		if finalized == len(judgeIDs) {
			complete = append(complete, PanelEntry{
				Contestant:   contestant,
				AverageScore: sum / float64(finalized),
				JudgeCount:   finalized,
			})
		}
	}

	result.AllJudged = len(complete) == len(contestants)
	if !result.AllJudged {
		return result
	}

	sort.SliceStable(complete, func(i, j int) bool {
		return complete[i].AverageScore > complete[j].AverageScore
	})
	if len(complete) > panelPodiumSize {
		complete = complete[:panelPodiumSize]
	}
	result.Results = complete
	return result
}
