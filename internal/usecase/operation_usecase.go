package usecase

import (
	"context"

	"github.com/ivlev/moneta/internal/domain"
)

// OperationUseCase exposes read access to the operation audit trail
// plus administrative deletion. Operation records are never updated.
type OperationUseCase struct {
	operationRepo OperationRepository
}

var _ OperationService = (*OperationUseCase)(nil)

// NewOperationUseCase creates a new OperationUseCase.
func NewOperationUseCase(operationRepo OperationRepository) *OperationUseCase {
	return &OperationUseCase{operationRepo: operationRepo}
}

// GetOperation retrieves an operation by ID.
func (uc *OperationUseCase) GetOperation(ctx context.Context, actor domain.Identity, id int64) (*domain.Operation, error) {
	op, err := uc.operationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapPersistence(err)
	}

	return op, nil
}

// ListOperationsByAccountInput represents input for listing operations
// touching an account as either endpoint.
type ListOperationsByAccountInput struct {
	AccountID int64
	Limit     int
	Offset    int
}

// GetOperationsByAccount lists operations for an account.
func (uc *OperationUseCase) GetOperationsByAccount(ctx context.Context, actor domain.Identity, input ListOperationsByAccountInput) ([]*domain.Operation, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	ops, err := uc.operationRepo.ListByAccount(ctx, input.AccountID, limit, offset)
	if err != nil {
		return nil, wrapPersistence(err)
	}

	return ops, nil
}

// ListOperationsByUserInput represents input for listing operations
// touching a user as either endpoint.
type ListOperationsByUserInput struct {
	UserID int64
	Limit  int
	Offset int
}

// GetOperationsByUser lists operations for a user.
func (uc *OperationUseCase) GetOperationsByUser(ctx context.Context, actor domain.Identity, input ListOperationsByUserInput) ([]*domain.Operation, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	ops, err := uc.operationRepo.ListByUser(ctx, input.UserID, limit, offset)
	if err != nil {
		return nil, wrapPersistence(err)
	}

	return ops, nil
}

// DeleteOperation removes an operation record administratively.
func (uc *OperationUseCase) DeleteOperation(ctx context.Context, actor domain.Identity, id int64) error {
	return wrapPersistence(uc.operationRepo.Delete(ctx, id))
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
