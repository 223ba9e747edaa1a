package postgres

import (
	"ridehail/internal/domain/entity"
	"ridehail/internal/infra/persistence/model"
)

func fromUserDomain(u *entity.User) *model.UserModel {
	return &model.UserModel{
		Base:     model.Base{ID: u.ID, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt},
		Email:    u.Email,
		Password: u.Password,
		Name:     u.Name,
		Phone:    u.Phone,
		Role:     u.Role.String(),
	}
}

func toUserDomain(m *model.UserModel) *entity.User {
	return &entity.User{
		ID:        m.ID,
		Email:     m.Email,
		Password:  m.Password,
		Name:      m.Name,
		Phone:     m.Phone,
		Role:      entity.Role(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromDriverDomain(d *entity.Driver) *model.DriverModel {
	return &model.DriverModel{
		Base:        model.Base{ID: d.ID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		UserID:      d.UserID,
		Name:        d.Name,
		Phone:       d.Phone,
		Rating:      d.Rating,
		TotalTrips:  d.TotalTrips,
		VehicleID:   d.VehicleID,
		IsAvailable: d.IsAvailable,
		City:        d.City,
	}
}

func toDriverDomain(m *model.DriverModel) *entity.Driver {
	return &entity.Driver{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Phone:       m.Phone,
		Rating:      m.Rating,
		TotalTrips:  m.TotalTrips,
		VehicleID:   m.VehicleID,
		IsAvailable: m.IsAvailable,
		City:        m.City,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromVehicleDomain(v *entity.Vehicle) *model.VehicleModel {
	return &model.VehicleModel{
		Base:        model.Base{ID: v.ID, CreatedAt: v.CreatedAt, UpdatedAt: v.UpdatedAt},
		DriverID:    v.DriverID,
		Brand:       v.Brand,
		Model:       v.Model,
		Year:        v.Year,
		Color:       v.Color,
		Plate:       v.Plate,
		VehicleType: v.Type.String(),
	}
}

func toVehicleDomain(m *model.VehicleModel) *entity.Vehicle {
	return &entity.Vehicle{
		ID:        m.ID,
		DriverID:  m.DriverID,
		Brand:     m.Brand,
		Model:     m.Model,
		Year:      m.Year,
		Color:     m.Color,
		Plate:     m.Plate,
		Type:      entity.VehicleType(m.VehicleType),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromTripDomain(t *entity.Trip) *model.TripModel {
	m := &model.TripModel{
		Base:          model.Base{ID: t.ID, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt},
		UserID:        t.UserID,
		DriverID:      t.DriverID,
		From:          t.From,
		To:            t.To,
		DistanceKm:    t.DistanceKm,
		DurationMin:   t.DurationMin,
		Status:        t.Status.String(),
		Price:         t.Price,
		City:          t.City,
		VehicleType:   t.VehicleType.String(),
		PaymentMethod: t.PaymentMethod.String(),
		ScheduledAt:   t.ScheduledAt,
		CompletedAt:   t.CompletedAt,
	}
	if t.FromLocation != nil {
		m.FromLat, m.FromLng = &t.FromLocation.Lat, &t.FromLocation.Lng
	}
	if t.ToLocation != nil {
		m.ToLat, m.ToLng = &t.ToLocation.Lat, &t.ToLocation.Lng
	}

	return m
}

func toTripDomain(m *model.TripModel) *entity.Trip {
	t := &entity.Trip{
		ID:            m.ID,
		UserID:        m.UserID,
		DriverID:      m.DriverID,
		From:          m.From,
		To:            m.To,
		DistanceKm:    m.DistanceKm,
		DurationMin:   m.DurationMin,
		Status:        entity.TripStatus(m.Status),
		Price:         m.Price,
		City:          m.City,
		VehicleType:   entity.VehicleType(m.VehicleType),
		PaymentMethod: entity.PaymentMethod(m.PaymentMethod),
		ScheduledAt:   m.ScheduledAt,
		CompletedAt:   m.CompletedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.FromLat != nil && m.FromLng != nil {
		t.FromLocation = &entity.GeoPoint{Lat: *m.FromLat, Lng: *m.FromLng}
	}
	if m.ToLat != nil && m.ToLng != nil {
		t.ToLocation = &entity.GeoPoint{Lat: *m.ToLat, Lng: *m.ToLng}
	}

	return t
}

func fromRatingDomain(r *entity.Rating) *model.RatingModel {
	return &model.RatingModel{
		Base:     model.Base{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		TripID:   r.TripID,
		UserID:   r.UserID,
		DriverID: r.DriverID,
		Score:    r.Score,
		Comment:  r.Comment,
	}
}

func toRatingDomain(m *model.RatingModel) *entity.Rating {
	return &entity.Rating{
		ID:        m.ID,
		TripID:    m.TripID,
		UserID:    m.UserID,
		DriverID:  m.DriverID,
		Score:     m.Score,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromPaymentDomain(p *entity.Payment) *model.PaymentModel {
	return &model.PaymentModel{
		Base:          model.Base{ID: p.ID, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt},
		TripID:        p.TripID,
		UserID:        p.UserID,
		Amount:        p.Amount,
		Method:        p.Method.String(),
		Status:        p.Status.String(),
		TransactionID: p.TransactionID,
	}
}

func toPaymentDomain(m *model.PaymentModel) *entity.Payment {
	return &entity.Payment{
		ID:            m.ID,
		TripID:        m.TripID,
		UserID:        m.UserID,
		Amount:        m.Amount,
		Method:        entity.PaymentMethod(m.Method),
		Status:        entity.PaymentStatus(m.Status),
		TransactionID: m.TransactionID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
