package client

import "time"

// Profile is the user profile as returned by GET /profile/me. The analysis
// payload is produced server-side; the client never modifies it except for
// the completed flags on roadmap action items.
type Profile struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	TargetRole      string    `json:"target_role"`
	ExperienceLevel string    `json:"experience_level"`
	Analysis        *Analysis  `json:"ai_analysis_json"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

type Analysis struct {
	MatchScore       int            `json:"match_score"`
	ExecutiveSummary string         `json:"executive_summary"`
	SkillBreakdown   []SkillScore   `json:"skill_breakdown"`
	MissingSkills    []string       `json:"missing_skills"`
	Roadmap          []RoadmapPhase `json:"roadmap"`
}

type SkillScore struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// RoadmapPhase is one column of the learning roadmap. Action items are
// addressed positionally (phase index, item index) because the service
// stores the roadmap as a nested array without stable item ids.
type RoadmapPhase struct {
	Phase       string       `json:"phase"`
	Week        string       `json:"week"`
	Topics      []string     `json:"topics"`
	ActionItems []ActionItem `json:"action_items"`
}

type ActionItem struct {
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}
