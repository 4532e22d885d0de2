package database

import (
	"context"
	"time"

	"github.com/rpupo63/hospitality-studio-backend/metrics"
	"github.com/rpupo63/hospitality-studio-backend/models"
)

type InquiryRepo struct {
	gateway    Gateway
	collection string
	timeout    time.Duration
}

func NewInquiryRepo(gateway Gateway, collection string, timeout time.Duration) *InquiryRepo {
	return &InquiryRepo{gateway: gateway, collection: collection, timeout: timeout}
}

// Collection returns the collection inquiries are written to.
func (r *InquiryRepo) Collection() string {
	return r.collection
}

// Add stores a validated inquiry and returns its identifier
func (r *InquiryRepo) Add(ctx context.Context, inquiry models.Inquiry) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	id, err := r.gateway.Insert(ctx, r.collection, inquiry.Document())
	metrics.RecordDBOperation("insert", time.Since(start), err)
	if err != nil {
		return "", err
	}
	metrics.RecordInquirySubmitted()
	return id, nil
}

// FindRecent returns up to limit inquiries, newest first
func (r *InquiryRepo) FindRecent(ctx context.Context, limit int) ([]models.Document, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	docs, err := r.gateway.FetchRecent(ctx, r.collection, limit)
	metrics.RecordDBOperation("fetch", time.Since(start), err)
	return docs, err
}

func (r *InquiryRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}
