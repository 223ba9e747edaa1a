package entity

import "time"

const (
	MinScore = 0.0
	MaxScore = 5.0
)

// Rating is a rider's score for the driver of a trip.
type Rating struct {
	ID        string    `json:"id" firestore:"id"`
	TripID    string    `json:"tripId" firestore:"trip_id"`
	UserID    string    `json:"userId" firestore:"user_id"`
	DriverID  string    `json:"driverId" firestore:"driver_id"`
	Score     float64   `json:"score" firestore:"score"`
	Comment   string    `json:"comment,omitempty" firestore:"comment"`
	CreatedAt time.Time `json:"createdAt" firestore:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updated_at"`
}

func (r *Rating) RecordID() string { return r.ID }

func (r *Rating) RecordKind() Kind { return KindRating }

func (r *Rating) Touch(now time.Time) { r.UpdatedAt = now }

func (r *Rating) FieldValue(field string) (any, bool) {
	switch field {
	case FieldID:
		return r.ID, true
	case FieldTripID:
		return r.TripID, true
	case FieldUserID:
		return r.UserID, true
	case FieldDriverID:
		return r.DriverID, true
	case FieldScore:
		return r.Score, true
	default:
		return nil, false
	}
}

type RatingUpdate struct {
	Score   *float64 `json:"score,omitempty"`
	Comment *string  `json:"comment,omitempty"`
}

func (p RatingUpdate) Apply(r *Rating) {
	if p.Score != nil {
		r.Score = *p.Score
	}
	if p.Comment != nil {
		r.Comment = *p.Comment
	}
}

// AverageScore returns the arithmetic mean of the scores, or 0 for none.
func AverageScore(ratings []*Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}

	var total float64
	for _, r := range ratings {
		total += r.Score
	}

	return total / float64(len(ratings))
}
