package service

import (
	"time"

	"github.com/99minutos/customer-desk/internal/core/domain"
)

// monthBuckets is the number of calendar months covered by ByMonth,
// the current one included.
const monthBuckets = 6

// Stats counts customers by status. It is recomputed on every call.
func (r *CustomerRegistry) Stats() domain.CustomerStats {
	customers := r.snapshotShared()

	stats := domain.CustomerStats{Total: len(customers)}
	for _, c := range customers {
		switch c.Status {
		case domain.StatusActive:
			stats.Active++
		case domain.StatusInactive:
			stats.Inactive++
		case domain.StatusPending:
			stats.Pending++
		}
	}
	return stats
}

// ByMonth returns the number of customers created in each of the last six
// calendar months, oldest first, labelled "Jan 2006".
func (r *CustomerRegistry) ByMonth() []domain.MonthlyCount {
	customers := r.snapshotShared()
	now := r.now()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	buckets := make([]domain.MonthlyCount, 0, monthBuckets)
	for i := monthBuckets - 1; i >= 0; i-- {
		start := current.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		count := 0
		for _, c := range customers {
			if !c.CreatedAt.Before(start) && c.CreatedAt.Before(end) {
				count++
			}
		}
		buckets = append(buckets, domain.MonthlyCount{
			Month: start.Format("Jan 2006"),
			Count: count,
		})
	}
	return buckets
}
