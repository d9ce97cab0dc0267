package dto

type InterestResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type InterestListResponse struct {
	Items []InterestResponse `json:"items"`
	Total int                `json:"total"`
}
