package batch

import (
	"context"
	"customer-api/internal/domain/customer"
	"customer-api/internal/infrastructure/monitoring"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const DefaultCensusSchedule = "*/15 * * * *"

// CensusJob counts active and inactive customers and publishes the totals as a gauge.
type CensusJob struct {
	lister customer.CustomerLister
	logger *slog.Logger
}

func NewCensusJob(lister customer.CustomerLister, logger *slog.Logger) *CensusJob {
	if lister == nil || logger == nil {
		panic("CensusJob dependencies cannot be nil")
	}
	return &CensusJob{
		lister: lister,
		logger: logger.With("job", "CustomerCensus"),
	}
}

func (j *CensusJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting customer census job.")

	customers, err := j.lister.Execute(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list customers, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run census, failed to list customers: %w", err)
	}

	var active, inactive int
	for _, c := range customers {
		if c.Active {
			active++
		} else {
			inactive++
		}
	}

	monitoring.Business.Customers.WithLabelValues(monitoring.StatusActive).Set(float64(active))
	monitoring.Business.Customers.WithLabelValues(monitoring.StatusInactive).Set(float64(inactive))

	j.logger.InfoContext(ctx, "Customer census job finished successfully.",
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("active", active),
		slog.Int("inactive", inactive),
	)
	return nil
}

// Schedule registers the job on c; a blank spec falls back to DefaultCensusSchedule
// and a non-positive timeout to one minute.
func Schedule(c *cron.Cron, spec string, timeout time.Duration, job *CensusJob, logger *slog.Logger) (cron.EntryID, error) {
	if spec == "" {
		spec = DefaultCensusSchedule
		logger.Warn("Census schedule not configured, using default", "schedule", spec)
	}
	if timeout <= 0 {
		timeout = time.Minute
	}

	jobID, err := c.AddJob(spec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "CustomerCensus")
		jobLogger.Info("Cron triggered: Running customer census job.")

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if runErr := job.Run(ctx); runErr != nil {
			jobLogger.Error("Customer census job finished with error", slog.Any("error", runErr))
		}
	}))
	if err != nil {
		return 0, fmt.Errorf("failed to schedule census job with spec %q: %w", spec, err)
	}

	logger.Info("Scheduled customer census job", "schedule", spec, "job_id", jobID)
	return jobID, nil
}
