package subsquare

import "time"

// One OpenGov referendum as listed by the SubSquare API
type Referendum struct {
	ReferendumIndex uint32           `json:"referendumIndex"`
	Title           string           `json:"title"`
	Content         string           `json:"content"`
	ContentSummary  *ContentSummary  `json:"contentSummary,omitempty"`
	Track           uint16           `json:"track"`
	Proposer        string           `json:"proposer"`
	State           *ReferendumState `json:"state,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

type ContentSummary struct {
	Summary string `json:"summary"`
}

type ReferendumState struct {
	Name string `json:"name"`
}

// Prefers the AI summary, falls back to the raw markdown content
func (self *Referendum) Summary() string {
	if self.ContentSummary != nil && self.ContentSummary.Summary != "" {
		return self.ContentSummary.Summary
	}
	return self.Content
}

type ReferendaPage struct {
	Items    []Referendum `json:"items"`
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"pageSize"`
}
