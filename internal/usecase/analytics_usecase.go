package usecase

import "context"

// Overview is the dashboard summary.
type Overview struct {
	TotalTrips       int64   `json:"totalTrips"`
	ActiveTrips      int64   `json:"activeTrips"`
	CompletedTrips   int64   `json:"completedTrips"`
	ScheduledTrips   int64   `json:"scheduledTrips"`
	TotalUsers       int64   `json:"totalUsers"`
	TotalDrivers     int64   `json:"totalDrivers"`
	AvailableDrivers int64   `json:"availableDrivers"`
	TotalRevenue     float64 `json:"totalRevenue"`
	AverageRating    float64 `json:"averageRating"`
}

// Revenue breaks down completed payments.
type Revenue struct {
	TotalRevenue      float64            `json:"totalRevenue"`
	CompletedPayments int64              `json:"completedPayments"`
	PendingPayments   int64              `json:"pendingPayments"`
	PendingAmount     float64            `json:"pendingAmount"`
	ByMethod          map[string]float64 `json:"byMethod"`
	AverageTripPrice  float64            `json:"averageTripPrice"`
}

// TripStats breaks down trips by status and city.
type TripStats struct {
	Total           int64            `json:"total"`
	ByStatus        map[string]int64 `json:"byStatus"`
	ByCity          map[string]int64 `json:"byCity"`
	AverageDistance float64          `json:"averageDistanceKm"`
	AveragePrice    float64          `json:"averagePrice"`
}

// AnalyticsUsecase computes read-only aggregates over the active store.
type AnalyticsUsecase interface {
	Overview(ctx context.Context) (*Overview, error)
	Revenue(ctx context.Context) (*Revenue, error)
	Trips(ctx context.Context) (*TripStats, error)
}
