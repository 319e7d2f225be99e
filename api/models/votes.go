package models

type VoteResponse struct {
	Message    string `json:"message"`
	TotalVotes int    `json:"totalVotes"`
}

type VotingStatusResponse struct {
	VotingOpen bool   `json:"votingOpen"`
	Message    string `json:"message"`
}

type MyVotesResponse struct {
	VotedContestants []string `json:"votedContestants"`
	TotalVotes       int      `json:"totalVotes"`
}

type CanVoteResponse struct {
	CanVote bool   `json:"canVote"`
	Reason  string `json:"reason,omitempty"`
}

type ContestantVoteStat struct {
	ContestantID string `json:"contestantId"`
	Name         string `json:"name"`
	Votes        int    `json:"votes"`
}

type CategoryStatsResponse struct {
	CategoryID string               `json:"categoryId"`
	TotalVotes int                  `json:"totalVotes"`
	Stats      []ContestantVoteStat `json:"stats"`
}
