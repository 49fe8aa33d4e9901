package firebase

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/payslip"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/codec"
	"google.golang.org/api/iterator"
)

type payslipRepositoryImpl struct {
	client *firestore.Client
}

func NewPayslipRepository(client *firestore.Client) payslip.PayslipRepository {
	return &payslipRepositoryImpl{client: client}
}

func payslipDocID(employeeID, month string) string {
	return employeeID + "_" + month
}

// Get implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) Get(ctx context.Context, employeeID string, month string) (payslip.Payslip, error) {
	snap, err := r.client.Collection(collectionPayslips).Doc(payslipDocID(employeeID, month)).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip %s/%s: %w", employeeID, month, err)
	}
	return codec.PayslipFromMap(snap.Data()), nil
}

// List implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) List(ctx context.Context, employeeID string) ([]payslip.Payslip, error) {
	iter := r.client.Collection(collectionPayslips).Where("employeeId", "==", employeeID).Documents(ctx)
	defer iter.Stop()

	var payslips []payslip.Payslip
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list payslips of %s: %w", employeeID, err)
		}
		payslips = append(payslips, codec.PayslipFromMap(snap.Data()))
	}

	sort.Slice(payslips, func(i, j int) bool { return payslips[i].Month > payslips[j].Month })
	return payslips, nil
}

// Exists implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) Exists(ctx context.Context, employeeID string, month string) (bool, error) {
	snap, err := r.client.Collection(collectionPayslips).Doc(payslipDocID(employeeID, month)).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check payslip %s/%s: %w", employeeID, month, err)
	}
	return snap.Exists(), nil
}

// Create implements payslip.PayslipRepository. DocumentRef.Create fails with
// AlreadyExists when the document is present, which makes it write-once.
func (r *payslipRepositoryImpl) Create(ctx context.Context, p payslip.Payslip) error {
	ref := r.client.Collection(collectionPayslips).Doc(payslipDocID(p.EmployeeID, p.Month))
	if _, err := ref.Create(ctx, codec.PayslipToMap(p)); err != nil {
		if isAlreadyExists(err) {
			return payslip.ErrPayslipAlreadyExists
		}
		return fmt.Errorf("failed to create payslip %s/%s: %w", p.EmployeeID, p.Month, err)
	}
	return nil
}
