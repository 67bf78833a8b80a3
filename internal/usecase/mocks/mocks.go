package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ivlev/moneta/internal/domain"
	"github.com/ivlev/moneta/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
// Without an override func it behaves as an in-memory store.
type MockAccountRepository struct {
	mu       sync.RWMutex
	nextID   int64
	accounts map[int64]*domain.Account

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id int64) (*domain.Account, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error)
	GetByUserIDFunc       func(ctx context.Context, userID int64) ([]*domain.Account, error)
	UpdateFunc            func(ctx context.Context, account *domain.Account) error
	UpdateFundsFunc       func(ctx context.Context, tx usecase.Transaction, id int64, funds decimal.Decimal) error
	DeleteFunc            func(ctx context.Context, id int64) error
	ExistsFunc            func(ctx context.Context, id int64) (bool, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[int64]*domain.Account),
	}
}

// Seed stores an account directly, assigning an id if absent.
func (m *MockAccountRepository) Seed(account *domain.Account) *domain.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	if account.ID == 0 {
		m.nextID++
		account.ID = m.nextID
	} else if account.ID > m.nextID {
		m.nextID = account.ID
	}
	m.accounts[account.ID] = account
	return account
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.Seed(account)
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		copied := *acc
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			copied := *acc
			accounts = append(accounts, &copied)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Account, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := []*domain.Account{}
	for _, acc := range m.accounts {
		if acc.UserID == userID {
			copied := *acc
			accounts = append(accounts, &copied)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	copied := *account
	m.accounts[account.ID] = &copied
	return nil
}

func (m *MockAccountRepository) UpdateFunds(ctx context.Context, tx usecase.Transaction, id int64, funds decimal.Decimal) error {
	if m.UpdateFundsFunc != nil {
		return m.UpdateFundsFunc(ctx, tx, id, funds)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Funds = funds
	return nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *MockAccountRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.accounts[id]
	return ok, nil
}

// Funds returns the stored funds for an account, for assertions.
func (m *MockAccountRepository) Funds(id int64) decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc.Funds
	}
	return decimal.Decimal{}
}

// MockOperationRepository is a mock implementation of
// OperationRepository.
type MockOperationRepository struct {
	mu         sync.RWMutex
	nextID     int64
	operations map[int64]*domain.Operation

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, op *domain.Operation) error
	GetByIDFunc       func(ctx context.Context, id int64) (*domain.Operation, error)
	ListByAccountFunc func(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Operation, error)
	ListByUserFunc    func(ctx context.Context, userID int64, limit, offset int) ([]*domain.Operation, error)
	DeleteFunc        func(ctx context.Context, id int64) error
}

func NewMockOperationRepository() *MockOperationRepository {
	return &MockOperationRepository{
		operations: make(map[int64]*domain.Operation),
	}
}

func (m *MockOperationRepository) Create(ctx context.Context, tx usecase.Transaction, op *domain.Operation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, op)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	op.ID = m.nextID
	m.operations[op.ID] = op
	return nil
}

func (m *MockOperationRepository) GetByID(ctx context.Context, id int64) (*domain.Operation, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if op, ok := m.operations[id]; ok {
		return op, nil
	}
	return nil, domain.ErrOperationNotFound
}

func (m *MockOperationRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Operation, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ops []*domain.Operation
	for _, op := range m.operations {
		if op.AccountID == accountID || (op.ToAccountID != nil && *op.ToAccountID == accountID) {
			ops = append(ops, op)
		}
	}
	return ops, nil
}

func (m *MockOperationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*domain.Operation, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ops []*domain.Operation
	for _, op := range m.operations {
		if op.Involves(userID) {
			ops = append(ops, op)
		}
	}
	return ops, nil
}

func (m *MockOperationRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.operations[id]; !ok {
		return domain.ErrOperationNotFound
	}
	delete(m.operations, id)
	return nil
}

// Count returns the number of stored operations, for assertions.
func (m *MockOperationRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.operations)
}

// MockTransaction records commit/rollback calls.
type MockTransaction struct {
	mu         sync.Mutex
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of
// TransactionManager.
type MockTransactionManager struct {
	mu    sync.Mutex
	Last  *MockTransaction
	Began int

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Began++
	m.Last = &MockTransaction{}
	return m.Last, nil
}

// MockConverter is a mock implementation of Converter backed by a
// fixed rate table keyed by "FROM:TO".
type MockConverter struct {
	Rates map[string]decimal.Decimal

	RateFunc    func(ctx context.Context, from, to domain.Currency) (decimal.Decimal, error)
	ConvertFunc func(ctx context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error)
}

func NewMockConverter() *MockConverter {
	return &MockConverter{Rates: make(map[string]decimal.Decimal)}
}

// SetRate fixes the rate for a currency pair.
func (m *MockConverter) SetRate(from, to domain.Currency, rate decimal.Decimal) {
	m.Rates[string(from)+":"+string(to)] = rate
}

func (m *MockConverter) Rate(ctx context.Context, from, to domain.Currency) (decimal.Decimal, error) {
	if m.RateFunc != nil {
		return m.RateFunc(ctx, from, to)
	}
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	if rate, ok := m.Rates[string(from)+":"+string(to)]; ok {
		return rate, nil
	}
	return decimal.Decimal{}, domain.ErrRateUnavailable
}

func (m *MockConverter) Convert(ctx context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error) {
	if m.ConvertFunc != nil {
		return m.ConvertFunc(ctx, amount, from, to)
	}
	rate, err := m.Rate(ctx, from, to)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return amount.Mul(rate), nil
}

// MockReferenceGenerator is a mock implementation of
// ReferenceGenerator.
type MockReferenceGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockReferenceGenerator() *MockReferenceGenerator {
	return &MockReferenceGenerator{}
}

func (m *MockReferenceGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return time.Now().UTC().Format("20060102150405") + "-" + string(rune('a'+m.next%26))
}

// MockRetrier runs the operation once without retrying.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}
