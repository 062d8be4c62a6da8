package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/crm/pkg/logger"
)

// ReportCacheKey holds the latest report in the cache store.
const ReportCacheKey = "crm:report:latest"

const reportQuery = `{
	allCustomers { totalCount }
	allOrders { totalCount edges { node { totalAmount } } }
}`

// CRMReport is the weekly summary published to the cache.
type CRMReport struct {
	Customers   int       `json:"customers"`
	Orders      int       `json:"orders"`
	Revenue     string    `json:"revenue"`
	GeneratedAt time.Time `json:"generated_at"`
}

func (r CRMReport) String() string {
	return fmt.Sprintf("Report: %d customers, %d orders, %s revenue", r.Customers, r.Orders, r.Revenue)
}

// ArchivePath is where a report generated at t is stored on disk.
func ArchivePath(t time.Time) string {
	return "reports/crm-report-" + t.Format("20060102-150405") + ".txt"
}

// report logs customer, order and revenue totals, then publishes the
// report to the cache and archives it. Publication failures are logged
// only.
func (e *Env) report(ctx context.Context) error {
	log, err := e.open(e.Logs.Report, true)
	if err != nil {
		return err
	}
	defer log.Close()

	rep, err := e.fetchReport(ctx)
	if err != nil {
		log.Error("Error generating CRM report: " + err.Error())
		return fmt.Errorf("jobs: report: %w", err)
	}
	log.Info(rep.String())

	e.publish(ctx, rep)
	return nil
}

func (e *Env) fetchReport(ctx context.Context) (CRMReport, error) {
	var out struct {
		AllCustomers struct{ TotalCount int }
		AllOrders    struct {
			TotalCount int
			Edges      []struct {
				Node struct{ TotalAmount string }
			}
		}
	}
	if err := e.Client.Do(ctx, reportQuery, nil, &out); err != nil {
		return CRMReport{}, err
	}

	revenue := decimal.Zero
	for _, edge := range out.AllOrders.Edges {
		amount, err := decimal.NewFromString(edge.Node.TotalAmount)
		if err != nil {
			return CRMReport{}, fmt.Errorf("total amount %q: %w", edge.Node.TotalAmount, err)
		}
		revenue = revenue.Add(amount)
	}

	return CRMReport{
		Customers:   out.AllCustomers.TotalCount,
		Orders:      out.AllOrders.TotalCount,
		Revenue:     revenue.StringFixed(2),
		GeneratedAt: e.now().UTC(),
	}, nil
}

func (e *Env) publish(ctx context.Context, rep CRMReport) {
	log := logger.WithCtx(ctx)

	if e.Cache != nil {
		if err := e.Cache.Set(ctx, ReportCacheKey, rep, 0); err != nil {
			log.Warn("report: cache publish failed", "error", err)
		}
	}

	if e.Disk != nil {
		path := ArchivePath(rep.GeneratedAt)
		if err := e.Disk.Put(ctx, path, []byte(rep.String()+"\n")); err != nil {
			log.Warn("report: archive failed", "path", path, "error", err)
			return
		}
		log.Info("report archived", "url", e.Disk.URL(path))
	}
}
