package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aimuhasebi/platform/internal/domain/models"
	"github.com/aimuhasebi/platform/internal/domain/repository"
	"github.com/aimuhasebi/platform/pkg/constants"
	"github.com/aimuhasebi/platform/pkg/errors"
	"github.com/aimuhasebi/platform/pkg/logger"
	"github.com/aimuhasebi/platform/pkg/timeutil"
)

// DashboardTrendsService produces the tenant-wide trend series backing the
// risk dashboard: daily score averages, alert counts and severity tallies.
type DashboardTrendsService interface {
	GetDashboardTrends(ctx context.Context, tenantID string, period constants.TrendPeriod) (*models.TenantTrendsResult, error)
}

type dashboardTrendsService struct {
	historyRepo repository.RiskScoreHistoryRepository
	alertRepo   repository.RiskAlertRepository
	log         logger.Logger
	now         func() time.Time
}

// NewDashboardTrendsService creates a new DashboardTrendsService.
func NewDashboardTrendsService(
	historyRepo repository.RiskScoreHistoryRepository,
	alertRepo repository.RiskAlertRepository,
	log logger.Logger,
) DashboardTrendsService {
	return &dashboardTrendsService{
		historyRepo: historyRepo,
		alertRepo:   alertRepo,
		log:         log.WithComponent("dashboard_trends_service"),
		now:         time.Now,
	}
}

type dayScoreBucket struct {
	total  float64
	count  int
	low    int
	medium int
	high   int
}

// GetDashboardTrends buckets company-scoped history and alerts by UTC
// calendar day over the period, zero-filling days without data so all series
// are date-aligned and cover every day from the cutoff through today
// inclusive.
//
// Two averaging behaviors coexist deliberately: the per-day Scores array
// keeps a 0 for empty days (chart semantics), while the scalar AverageScore
// and the half-over-half trend comparison use only the non-zero entries
// (summary semantics).
func (s *dashboardTrendsService) GetDashboardTrends(ctx context.Context, tenantID string, period constants.TrendPeriod) (*models.TenantTrendsResult, error) {
	if !period.IsValid() {
		return nil, errors.ErrValidation("unknown trend period: " + string(period))
	}

	now := s.now().UTC()
	cutoff := now.AddDate(0, 0, -period.Days())

	var (
		observations []models.RiskScoreObservation
		alerts       []models.RiskAlert
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		observations, err = s.historyRepo.ListByTenantScope(gctx, tenantID, constants.EntityTypeCompany, cutoff)
		return err
	})
	g.Go(func() error {
		var err error
		alerts, err = s.alertRepo.ListSince(gctx, tenantID, cutoff)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "failed to load dashboard trend data")
	}

	scoreBuckets := make(map[string]*dayScoreBucket)
	for _, obs := range observations {
		key := timeutil.DayKey(obs.RecordedAt)
		bucket, ok := scoreBuckets[key]
		if !ok {
			bucket = &dayScoreBucket{}
			scoreBuckets[key] = bucket
		}
		bucket.total += obs.Score
		bucket.count++
		switch obs.Severity {
		case constants.SeverityLow:
			bucket.low++
		case constants.SeverityMedium:
			bucket.medium++
		case constants.SeverityHigh:
			bucket.high++
		}
	}

	alertBuckets := make(map[string]int)
	for _, alert := range alerts {
		alertBuckets[timeutil.DayKey(alert.CreatedAt)]++
	}

	days := timeutil.EachDay(cutoff, now)
	dates := make([]string, 0, len(days))
	scores := make([]float64, 0, len(days))
	counts := make([]int, 0, len(days))
	low := make([]int, 0, len(days))
	medium := make([]int, 0, len(days))
	high := make([]int, 0, len(days))

	for _, day := range days {
		key := timeutil.DayKey(day)
		dates = append(dates, key)

		if bucket, ok := scoreBuckets[key]; ok {
			scores = append(scores, bucket.total/float64(bucket.count))
			low = append(low, bucket.low)
			medium = append(medium, bucket.medium)
			high = append(high, bucket.high)
		} else {
			scores = append(scores, 0)
			low = append(low, 0)
			medium = append(medium, 0)
			high = append(high, 0)
		}

		counts = append(counts, alertBuckets[key])
	}

	average, trend := summarizeScores(scores)

	return &models.TenantTrendsResult{
		RiskScoreTrend: models.RiskScoreTrend{
			Dates:        dates,
			Scores:       scores,
			AverageScore: average,
			Trend:        trend,
		},
		AlertFrequencyTrend: models.AlertFrequencyTrend{
			Dates:       dates,
			Counts:      counts,
			TotalAlerts: len(alerts),
		},
		RiskDistributionTrend: models.RiskDistributionTrend{
			Dates:  dates,
			Low:    low,
			Medium: medium,
			High:   high,
		},
	}, nil
}

// summarizeScores derives the scalar average and tenant-wide trend from the
// zero-filled daily series. Both use only the non-zero entries: the trend
// splits them in half by index and compares the half averages with the same
// dead-band rule used for single entities.
func summarizeScores(scores []float64) (float64, constants.TrendDirection) {
	nonZero := make([]float64, 0, len(scores))
	for _, v := range scores {
		if v != 0 {
			nonZero = append(nonZero, v)
		}
	}
	if len(nonZero) == 0 {
		return 0, constants.TrendStable
	}

	sum := 0.0
	for _, v := range nonZero {
		sum += v
	}
	average := sum / float64(len(nonZero))

	if len(nonZero) < 2 {
		return average, constants.TrendStable
	}

	mid := len(nonZero) / 2
	firstAvg := mean(nonZero[:mid])
	secondAvg := mean(nonZero[mid:])
	return average, models.ClassifyTrend(secondAvg, &firstAvg)
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
