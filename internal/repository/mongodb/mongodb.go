// Package mongodb stores the dashboard documents in MongoDB collections
// using the same field layout as the Firestore backend.
package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	collectionEmployees  = "employees"
	collectionAttendance = "attendance"
	collectionHolidays   = "holidays"
	collectionLeaves     = "leaves"
	collectionPayslips   = "payslips"

	fieldApplications = "applications"
)

// normalize turns driver types into the plain Go values the codec reads.
func normalize(v any) any {
	switch x := v.(type) {
	case primitive.DateTime:
		return x.Time().UTC()
	case primitive.M:
		return normalizeMap(x)
	case primitive.D:
		return normalizeMap(x.Map())
	case primitive.A:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = normalize(item)
		}
		return out
	case primitive.Decimal128:
		return x.String()
	default:
		return v
	}
}

func normalizeMap(m bson.M) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if k == "_id" {
			continue
		}
		out[k] = normalize(v)
	}
	return out
}

func byID(id string) bson.M {
	return bson.M{"_id": id}
}
