package history

import (
	"context"
	"sort"
	"time"

	"github.com/novalabs/novapos-backend/internal/modules/checkout"
)

// DailyBucket is one calendar day's summed revenue.
type DailyBucket struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// Summary aggregates the full sales history.
type Summary struct {
	TotalRevenue     float64 `json:"total_revenue"`
	TransactionCount int     `json:"transaction_count"`
	AverageTicket    float64 `json:"average_ticket"`
}

// Service defines sales-history reporting.
type Service interface {
	ListTransactions(ctx context.Context, withItems bool) ([]*checkout.Transaction, error)
	Summary(ctx context.Context) (*Summary, error)
	DailyRevenue(ctx context.Context, days int) ([]DailyBucket, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ListTransactions(ctx context.Context, withItems bool) ([]*checkout.Transaction, error) {
	return s.repo.List(ctx, withItems)
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	txs, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	return Summarize(txs), nil
}

func (s *service) DailyRevenue(ctx context.Context, days int) ([]DailyBucket, error) {
	txs, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	return BucketByDay(txs, days), nil
}

// Summarize computes total revenue, transaction count, and average ticket.
// The average is zero when there are no transactions.
func Summarize(txs []*checkout.Transaction) *Summary {
	sum := &Summary{TransactionCount: len(txs)}
	for _, t := range txs {
		sum.TotalRevenue += t.TotalAmount
	}
	if sum.TransactionCount > 0 {
		sum.AverageTicket = sum.TotalRevenue / float64(sum.TransactionCount)
	}
	return sum
}

// BucketByDay groups transaction totals by local calendar date and returns
// the most recent `days` buckets in chronological order.
func BucketByDay(txs []*checkout.Transaction, days int) []DailyBucket {
	totals := map[string]float64{}
	for _, t := range txs {
		day := t.CreatedAt.Local().Format("2006-01-02")
		totals[day] += t.TotalAmount
	}

	dates := make([]string, 0, len(totals))
	for day := range totals {
		dates = append(dates, day)
	}
	// The date layout sorts lexicographically in chronological order.
	sort.Strings(dates)
	if days > 0 && len(dates) > days {
		dates = dates[len(dates)-days:]
	}

	buckets := make([]DailyBucket, len(dates))
	for i, day := range dates {
		buckets[i] = DailyBucket{Date: day, Total: totals[day]}
	}
	return buckets
}

// Day formats a timestamp the way BucketByDay keys its buckets. Exposed for
// callers that want to label "today" consistently.
func Day(t time.Time) string { return t.Local().Format("2006-01-02") }
