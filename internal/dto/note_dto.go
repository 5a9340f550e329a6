package dto

import "time"

type NoteResponse struct {
	Id           string    `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
	Score        int       `json:"score"`
	Tier         string    `json:"tier"`
	MatchReasons []string  `json:"match_reasons,omitempty"`
}

type SearchNotesResponse struct {
	Query string         `json:"query"`
	Tag   string         `json:"tag,omitempty"`
	Notes []NoteResponse `json:"notes"`
}

type StatsResponse struct {
	Total  int64            `json:"total"`
	PerTag map[string]int64 `json:"per_tag"`
}

type TagsResponse struct {
	Tags []string `json:"tags"`
}
