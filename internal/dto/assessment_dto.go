package dto

type SubmitRequest struct {
	Step          string `json:"step"`
	CategoryIndex *int   `json:"category_index,omitempty"`
	// CategoryIndexCamel accepts the camelCase spelling some clients send.
	CategoryIndexCamel *int `json:"categoryIndex,omitempty"`
	Rating             *int `json:"rating,omitempty"`
}

// Index returns whichever spelling of the category index was sent.
func (r SubmitRequest) Index() *int {
	if r.CategoryIndex != nil {
		return r.CategoryIndex
	}
	return r.CategoryIndexCamel
}

type SaveRatingResponse struct {
	OK              bool   `json:"ok"`
	Status          string `json:"status"`
	CategorySummary string `json:"category_summary"`
	NextCategory    int    `json:"next_category"`
	IsComplete      bool   `json:"is_complete"`
}

type OverallSummaryResponse struct {
	OK             bool   `json:"ok"`
	Status         string `json:"status"`
	OverallSummary string `json:"overall_summary"`
}

type ResetResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}

type StatusResponse struct {
	OK                bool              `json:"ok"`
	Status            string            `json:"status"`
	Ratings           map[string]int    `json:"ratings,omitempty"`
	CategorySummaries map[string]string `json:"category_summaries,omitempty"`
	OverallSummary    *string           `json:"overall_summary,omitempty"`
	CurrentCategory   *int              `json:"current_category,omitempty"`
}

type ClientConfigResponse struct {
	OK          bool     `json:"ok"`
	SubmitURL   string   `json:"submit_url"`
	StatusURL   string   `json:"status_url"`
	WheelURL    string   `json:"wheel_url"`
	CSRFToken   string   `json:"csrf_token,omitempty"`
	User        string   `json:"user"`
	DisplayName string   `json:"display_name"`
	Categories  []string `json:"categories"`
}
