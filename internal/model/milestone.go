package model

import (
	"time"

	"tinkerly.io/api/internal/estimate"
)

type MilestoneStatus string

const (
	MilestoneStatusPending    MilestoneStatus = "pending"
	MilestoneStatusInProgress MilestoneStatus = "in_progress"
	MilestoneStatusCompleted  MilestoneStatus = "completed"
	MilestoneStatusPaid       MilestoneStatus = "paid"
)

// milestoneTransitions lists the statuses reachable from each status.
var milestoneTransitions = map[MilestoneStatus][]MilestoneStatus{
	MilestoneStatusPending:    {MilestoneStatusInProgress, MilestoneStatusCompleted},
	MilestoneStatusInProgress: {MilestoneStatusPending, MilestoneStatusCompleted},
	MilestoneStatusCompleted:  {MilestoneStatusInProgress, MilestoneStatusPaid},
	MilestoneStatusPaid:       {},
}

func (s MilestoneStatus) IsValid() bool {
	_, ok := milestoneTransitions[s]
	return ok
}

func (s MilestoneStatus) CanTransitionTo(next MilestoneStatus) bool {
	for _, allowed := range milestoneTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Milestone struct {
	DueDate     time.Time       `json:"due_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      MilestoneStatus `json:"status"`
	ID          int64           `json:"id"`
	ProjectID   int64           `json:"project_id"`
	Position    int             `json:"position"`
	Percentage  int             `json:"percentage"`
	Amount      int64           `json:"amount"`
}

// PlanMilestones turns the percentage plan of an analysis into payable milestones.
// Amounts are total_cost * percentage / 100 rounded half up; milestone i is due
// (i+1) weeks after start.
func PlanMilestones(result estimate.Result, start time.Time) []Milestone {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	out := make([]Milestone, 0, len(result.Milestones))
	for i, m := range result.Milestones {
		out = append(out, Milestone{
			Position:    i,
			Title:       m.Title,
			Description: m.Description,
			Percentage:  m.Percentage,
			Amount:      MilestoneAmount(int64(result.TotalCost), m.Percentage),
			DueDate:     day.AddDate(0, 0, 7*(i+1)),
			Status:      MilestoneStatusPending,
		})
	}
	return out
}

func MilestoneAmount(totalCost int64, percentage int) int64 {
	return (totalCost*int64(percentage) + 50) / 100
}
