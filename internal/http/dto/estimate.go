package dto

import "tinkerly.io/api/internal/estimate"

// QuickEstimateRequest is the public calculator input. Every field is optional.
type QuickEstimateRequest struct {
	Title        string `json:"title" binding:"max=200"`
	Description  string `json:"description" binding:"max=10000"`
	Category     string `json:"category" binding:"max=100"`
	Requirements string `json:"requirements" binding:"max=20000"`
	Timeline     string `json:"timeline" binding:"max=100"`
	Complexity   string `json:"complexity" binding:"max=50"`
}

func (r QuickEstimateRequest) Descriptor() estimate.Descriptor {
	return estimate.Descriptor{
		Title:        r.Title,
		Description:  r.Description,
		Category:     r.Category,
		Requirements: r.Requirements,
		Timeline:     r.Timeline,
		Complexity:   r.Complexity,
	}
}

type QuickEstimateResponse struct {
	Analysis estimate.Result `json:"analysis"`
}
