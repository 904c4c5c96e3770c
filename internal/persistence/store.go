package persistence

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"invsettle/internal/errors"
	"invsettle/pkg/contracts/domain"
)

// insertBatchSize bounds the row count per INSERT when bulk-writing items.
const insertBatchSize = 100

// Store is the Postgres-backed persistence layer for persons, settlement
// invoices and line items.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open connects to Postgres and migrates the schema.
func Open(dsn string, logger *slog.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.NewStorageError("failed to connect to database", err)
	}

	if err := db.AutoMigrate(&Person{}, &SettlementInvoice{}, &LineItem{}); err != nil {
		return nil, errors.NewStorageError("failed to migrate schema", err)
	}

	return &Store{
		db:     db,
		logger: logger.With(slog.String("component", "store")),
	}, nil
}

// ResolvePerson fetches the person with the exact given name, creating the
// record on first sight. The second return value reports whether a record
// was created.
func (s *Store) ResolvePerson(ctx context.Context, name string) (domain.PersonRef, bool, error) {
	var person Person
	result := s.db.WithContext(ctx).
		Where(Person{Name: name}).
		FirstOrCreate(&person)
	if result.Error != nil {
		return domain.PersonRef{}, false, errors.NewStorageError("failed to resolve person", result.Error).
			WithContext("name", name)
	}

	created := result.RowsAffected > 0
	return person.toRef(), created, nil
}

// CreateInvoice allocates one new settlement invoice identity.
func (s *Store) CreateInvoice(ctx context.Context) (domain.SettlementInvoice, error) {
	invoice := SettlementInvoice{Reference: uuid.NewString()}
	if err := s.db.WithContext(ctx).Create(&invoice).Error; err != nil {
		return domain.SettlementInvoice{}, errors.NewStorageError("failed to create settlement invoice", err)
	}
	return invoice.toDomain(), nil
}

// BulkInsertItems persists all line items of a batch run in one operation.
// Items must already carry their settlement invoice assignment; nothing is
// written before every assignment is complete.
func (s *Store) BulkInsertItems(ctx context.Context, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}

	records := make([]LineItem, 0, len(items))
	for _, item := range items {
		records = append(records, fromDomainItem(item))
	}

	if err := s.db.WithContext(ctx).CreateInBatches(records, insertBatchSize).Error; err != nil {
		return errors.NewStorageError("failed to bulk insert line items", err)
	}

	s.logger.Info("line items persisted", slog.Int("count", len(records)))
	return nil
}

// ListInvoices returns all settlement invoices, newest first.
func (s *Store) ListInvoices(ctx context.Context) ([]domain.SettlementInvoice, error) {
	var records []SettlementInvoice
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, errors.NewStorageError("failed to list settlement invoices", err)
	}

	invoices := make([]domain.SettlementInvoice, 0, len(records))
	for _, rec := range records {
		invoices = append(invoices, rec.toDomain())
	}
	return invoices, nil
}

// ListItems returns the line items of one settlement invoice with their
// person names joined in.
func (s *Store) ListItems(ctx context.Context, invoiceID uint) ([]domain.LineItem, error) {
	var records []LineItem
	err := s.db.WithContext(ctx).
		Preload("Person").
		Where("settlement_invoice_id = ?", invoiceID).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, errors.NewStorageError("failed to list line items", err).
			WithContext("invoice_id", invoiceID)
	}

	items := make([]domain.LineItem, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.toDomain())
	}
	return items, nil
}
