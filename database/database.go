package database

import (
	"context"
	"time"

	"github.com/rpupo63/hospitality-studio-backend/models"
)

const defaultOperationTimeout = 10 * time.Second

type Database struct {
	gateway     Gateway
	inquiryRepo *InquiryRepo
}

type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inquiryCollection string
	operationTimeout  time.Duration
}

// WithInquiryCollection overrides the collection inquiries are stored in.
func WithInquiryCollection(name string) DatabaseOption {
	return func(o *databaseOptions) {
		if name != "" {
			o.inquiryCollection = name
		}
	}
}

// WithOperationTimeout bounds every repository call.
func WithOperationTimeout(d time.Duration) DatabaseOption {
	return func(o *databaseOptions) {
		if d > 0 {
			o.operationTimeout = d
		}
	}
}

// New initializes a new Database struct with each repository sharing one gateway
func New(gateway Gateway, opts ...DatabaseOption) Database {
	o := databaseOptions{
		inquiryCollection: models.InquiryCollection,
		operationTimeout:  defaultOperationTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return Database{
		gateway:     gateway,
		inquiryRepo: NewInquiryRepo(gateway, o.inquiryCollection, o.operationTimeout),
	}
}

func (d Database) InquiryRepo() *InquiryRepo {
	return d.inquiryRepo
}

func (d Database) Gateway() Gateway {
	return d.gateway
}

func (d Database) HealthCheck(ctx context.Context) HealthStatus {
	return d.gateway.HealthCheck(ctx)
}

func (d Database) Close(ctx context.Context) error {
	return d.gateway.Close(ctx)
}
