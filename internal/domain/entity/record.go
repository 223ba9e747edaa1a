// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Kind discriminates the six record types held by a record store.
type Kind string

const (
	KindUser    Kind = "user"
	KindTrip    Kind = "trip"
	KindDriver  Kind = "driver"
	KindRating  Kind = "rating"
	KindPayment Kind = "payment"
	KindVehicle Kind = "vehicle"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// Kinds lists every record kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindUser, KindTrip, KindDriver, KindRating, KindPayment, KindVehicle}
}

// Filterable field names. These are the storage names shared by every backend:
// struct fields in memory, document fields in Firestore, columns in Postgres.
const (
	FieldID          = "id"
	FieldEmail       = "email"
	FieldRole        = "role"
	FieldUserID      = "user_id"
	FieldDriverID    = "driver_id"
	FieldTripID      = "trip_id"
	FieldVehicleID   = "vehicle_id"
	FieldStatus      = "status"
	FieldCity        = "city"
	FieldPrice       = "price"
	FieldAmount      = "amount"
	FieldMethod      = "method"
	FieldScore       = "score"
	FieldIsAvailable = "is_available"
	FieldPlate       = "plate"
	FieldType        = "vehicle_type"
)

// Record is the pointer-side contract every persisted entity satisfies.
// T is the entity struct, so stores can hold *T and still copy values.
type Record[T any] interface {
	*T
	RecordID() string
	RecordKind() Kind
	// FieldValue returns the value of a filterable field by storage name.
	FieldValue(field string) (any, bool)
	// Touch refreshes UpdatedAt.
	Touch(now time.Time)
}

// Patch is a typed partial update. Only non-nil fields are merged.
type Patch[T any] interface {
	Apply(target *T)
}
