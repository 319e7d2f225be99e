package storage

import "time"

// Collection names one JSON document in the store.
type Collection string

const (
	CollectionAdmins      Collection = "admins"
	CollectionCategories  Collection = "categories"
	CollectionContestants Collection = "contestants"
	CollectionJudges      Collection = "judges"
	CollectionAudience    Collection = "audience"
	CollectionScores      Collection = "scores"
	CollectionSettings    Collection = "settings"
)

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Contestant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Company     string    `json:"company,omitempty"`
	Description string    `json:"description,omitempty"`
	CategoryID  string    `json:"categoryId"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Judge struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password"`
	Description  string    `json:"description,omitempty"`
	Image        string    `json:"image,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	Email        string    `json:"email,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type AudienceMember struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Mobile    string    `json:"mobile,omitempty"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	LoginCode string    `json:"loginCode"`
	CreatedAt time.Time `json:"createdAt"`
}

// Criterion is one weighted scoring dimension of a category. Weight is a percentage.
type Criterion struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Weight      float64 `json:"weight"`
	MaxScore    float64 `json:"maxScore"`
}

// JudgeScore is the stored submission of one judge for one contestant.
type JudgeScore struct {
	CriteriaScores   map[string]float64 `json:"criteriaScores"`
	Comments         string             `json:"comments,omitempty"`
	CategoryID       string             `json:"categoryId,omitempty"`
	TotalScore       float64            `json:"totalScore"`
	MaxPossibleScore float64            `json:"maxPossibleScore"`
	SubmittedAt      time.Time          `json:"submittedAt"`
	Finalized        bool               `json:"finalized"`
	FinalizedAt      *time.Time         `json:"finalizedAt,omitempty"`
}

type VoteLogEntry struct {
	AudienceID   string    `json:"audienceId"`
	ContestantID string    `json:"contestantId"`
	VotedAt      time.Time `json:"votedAt"`
}

// ScoresDocument holds both scoring streams.
// JudgeScores is keyed by contestant ID, then judge ID.
type ScoresDocument struct {
	JudgeScores   map[string]map[string]*JudgeScore `json:"judgeScores"`
	AudienceVotes map[string]int                    `json:"audienceVotes"`
	UserVotes     map[string][]string               `json:"userVotes"`
	VoteLogs      []VoteLogEntry                    `json:"voteLogs"`
	LastUpdated   *time.Time                        `json:"lastUpdated,omitempty"`
}

type ScoreWeights struct {
	Judges   float64 `json:"judges"`
	Audience float64 `json:"audience"`
}

// WinnerEntry is the publication record of a category. Places hold contestant IDs verbatim.
type WinnerEntry struct {
	First       string     `json:"first,omitempty"`
	Second      string     `json:"second,omitempty"`
	Third       string     `json:"third,omitempty"`
	DeclaredAt  *time.Time `json:"declaredAt,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// HasPlaces reports whether any place was explicitly declared.
func (w *WinnerEntry) HasPlaces() bool {
	return w != nil && (w.First != "" || w.Second != "" || w.Third != "")
}

type ResultsState struct {
	Published bool                    `json:"published"`
	Winners   map[string]*WinnerEntry `json:"winners"`
}

type Settings struct {
	EventName               string                  `json:"eventName,omitempty"`
	EventDescription        string                  `json:"eventDescription,omitempty"`
	VotingOpen              bool                    `json:"votingOpen"`
	VotingStatusUpdatedAt   *time.Time              `json:"votingStatusUpdatedAt,omitempty"`
	ScoreWeights            ScoreWeights            `json:"scoreWeights"`
	ScoreWeightsUpdatedAt   *time.Time              `json:"scoreWeightsUpdatedAt,omitempty"`
	CategoryScoringCriteria map[string][]*Criterion `json:"categoryScoringCriteria"`
	Results                 ResultsState            `json:"results"`
	UpdatedAt               *time.Time              `json:"updatedAt,omitempty"`
}
