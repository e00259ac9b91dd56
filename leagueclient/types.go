package leagueclient

// League mirrors the service's league resource.
type League struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ImageURL      string `json:"image_url,omitempty"`
	Size          int    `json:"size"`
	Visibility    string `json:"visibility"`
	PicksPerPhase int    `json:"picks_per_phase"`
	PickType      string `json:"pick_type"`
	IsInSeason    bool   `json:"is_in_season"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type Member struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	JoinedAt string `json:"joined_at"`
}

// LeagueView is a league plus its member list.
type LeagueView struct {
	League  League   `json:"league"`
	Members []Member `json:"members"`
}

type Invite struct {
	ID        string `json:"id"`
	Token     string `json:"token,omitempty"`
	LeagueID  string `json:"league_id"`
	InviteeID string `json:"invitee_id,omitempty"`
	Role      string `json:"role"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	MaxUses   int    `json:"max_uses,omitempty"`
	Uses      int    `json:"uses"`
	ExpiresAt string `json:"expires_at"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}

type Pick struct {
	LeagueID  string `json:"league_id"`
	EventID   string `json:"event_id"`
	Phase     int    `json:"phase"`
	Choice    string `json:"choice"`
	PickType  string `json:"pick_type"`
	UpdatedAt string `json:"updated_at"`
}

type Event struct {
	ID        string  `json:"id"`
	Phase     int     `json:"phase"`
	HomeTeam  string  `json:"home_team"`
	AwayTeam  string  `json:"away_team"`
	Spread    float64 `json:"spread"`
	StartsAt  string  `json:"starts_at"`
	Status    string  `json:"status"`
	HomeScore int     `json:"home_score"`
	AwayScore int     `json:"away_score"`
}

type Standing struct {
	Rank   int     `json:"rank"`
	UserID string  `json:"user_id"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	Pushes int     `json:"pushes"`
	Points float64 `json:"points"`
}

// CreateLeagueRequest creates a new private league. The caller becomes
// its first commissioner.
type CreateLeagueRequest struct {
	Name          string `json:"name"`
	ImageURL      string `json:"image_url,omitempty"`
	Size          int    `json:"size"`
	PicksPerPhase int    `json:"picks_per_phase"`
	PickType      string `json:"pick_type"`
}

// UpdateLeagueSettingsRequest carries partial settings updates. Nil
// fields are left unchanged.
type UpdateLeagueSettingsRequest struct {
	Name          *string `json:"name,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`
	Size          *int    `json:"size,omitempty"`
	PicksPerPhase *int    `json:"picks_per_phase,omitempty"`
	PickType      *string `json:"pick_type,omitempty"`
}

type CreateInviteRequest struct {
	Type          string `json:"type"`
	InviteeID     string `json:"invitee_id,omitempty"`
	Role          string `json:"role,omitempty"`
	ExpiresInDays int    `json:"expires_in_days,omitempty"`
	MaxUses       int    `json:"max_uses,omitempty"`
}

type PickChoice struct {
	EventID string `json:"event_id"`
	Choice  string `json:"choice"`
}

type SubmitPicksRequest struct {
	Phase   int          `json:"phase"`
	Choices []PickChoice `json:"choices"`
}
