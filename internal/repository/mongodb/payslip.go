package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/payslip"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/codec"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type payslipRepositoryImpl struct {
	collection *mongo.Collection
}

func NewPayslipRepository(db *mongo.Database) payslip.PayslipRepository {
	return &payslipRepositoryImpl{collection: db.Collection(collectionPayslips)}
}

func payslipID(employeeID, month string) string {
	return employeeID + "_" + month
}

// Get implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) Get(ctx context.Context, employeeID string, month string) (payslip.Payslip, error) {
	var doc bson.M
	if err := r.collection.FindOne(ctx, byID(payslipID(employeeID, month))).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip %s/%s: %w", employeeID, month, err)
	}
	return codec.PayslipFromMap(normalizeMap(doc)), nil
}

// List implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) List(ctx context.Context, employeeID string) ([]payslip.Payslip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "month", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"employeeId": employeeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips of %s: %w", employeeID, err)
	}
	defer cursor.Close(ctx)

	var payslips []payslip.Payslip
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode payslip: %w", err)
		}
		payslips = append(payslips, codec.PayslipFromMap(normalizeMap(doc)))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payslips: %w", err)
	}
	return payslips, nil
}

// Exists implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) Exists(ctx context.Context, employeeID string, month string) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, byID(payslipID(employeeID, month)), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check payslip %s/%s: %w", employeeID, month, err)
	}
	return n > 0, nil
}

// Create implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) Create(ctx context.Context, p payslip.Payslip) error {
	doc := bson.M{"_id": payslipID(p.EmployeeID, p.Month)}
	for k, v := range codec.PayslipToMap(p) {
		doc[k] = v
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return payslip.ErrPayslipAlreadyExists
		}
		return fmt.Errorf("failed to create payslip %s/%s: %w", p.EmployeeID, p.Month, err)
	}
	return nil
}
