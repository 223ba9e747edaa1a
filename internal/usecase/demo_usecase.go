package usecase

import (
	"context"

	"ridehail/internal/domain/entity"
)

// DemoData is a public snapshot of the store for display. Users carry no
// password hash because entity.User never serializes it.
type DemoData struct {
	Backend  string                `json:"backend"`
	Counts   map[entity.Kind]int64 `json:"counts"`
	Users    []*entity.User        `json:"users"`
	Drivers  []*entity.Driver      `json:"drivers"`
	Vehicles []*entity.Vehicle     `json:"vehicles"`
	Trips    []*entity.Trip        `json:"trips"`
}

// DemoUsecase serves the demo snapshot.
type DemoUsecase interface {
	Snapshot(ctx context.Context) (*DemoData, error)
}
