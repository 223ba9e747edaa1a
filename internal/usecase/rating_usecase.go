package usecase

import (
	"context"

	"ridehail/internal/domain/entity"
)

// CreateRatingInput describes a score for the driver of a trip. DriverID is
// taken from the trip when omitted.
type CreateRatingInput struct {
	TripID   string
	DriverID string
	Score    float64
	Comment  string
}

// RatingOutput is a new rating with the driver's recomputed average.
type RatingOutput struct {
	Rating       *entity.Rating
	DriverRating float64
}

// DriverRatings is every rating of one driver and their mean.
type DriverRatings struct {
	DriverID string
	Average  float64
	Ratings  []*entity.Rating
}

// RatingUsecase manages ratings.
type RatingUsecase interface {
	Create(ctx context.Context, actor *Actor, input *CreateRatingInput) (*RatingOutput, error)
	List(ctx context.Context) ([]*entity.Rating, error)
	ListByDriver(ctx context.Context, driverID string) (*DriverRatings, error)
}
