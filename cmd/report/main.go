package main

import (
	"fmt"
	"log"
	"os"

	"github.com/zllovesuki/offering/subscription"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	var logger *zap.Logger
	var dotFile string
	var err error

	env := os.Getenv("REPORT_ENV")
	if "production" == env {
		dotFile = ".env.production"
		logger, err = zap.NewProduction()
	} else {
		dotFile = ".env.development"
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Cannot initialize logger: %v\n", err)
	}
	defer logger.Sync()

	if err := godotenv.Load(dotFile); err != nil {
		logger.Warn("No .env file loaded, using process environment",
			zap.Error(err),
		)
	}

	path := os.Getenv("OFFERING_JSON")
	if len(path) == 0 {
		logger.Fatal("OFFERING_JSON is not set")
	}

	manager, err := subscription.NewManager(logger)
	if err != nil {
		logger.Fatal("Cannot initialize subscription.Manager",
			zap.Error(err),
		)
	}

	count, err := manager.LoadFromFile(path)
	if err != nil {
		logger.Fatal("Cannot load subscriptions",
			zap.String("path", path),
			zap.Error(err),
		)
	}
	logger.Info("Subscriptions loaded",
		zap.Int("count", count),
	)

	for _, s := range manager.List() {
		printReport(s)
	}
}

func printReport(s *subscription.Subscription) {
	fmt.Printf("%s (%s)\n", s.Name(), s.Slug())
	fmt.Printf("  rate: %s %s, billed %s\n", s.Rate().Amount, s.Rate().Unit, s.Rate().BillingCycle)

	finance := s.Finance()
	fmt.Printf("  gross revenue: %s\n", finance.Revenue.Gross.Value)
	fmt.Printf("  gross COS:     %s\n", finance.COS.Gross.Value)
	fmt.Printf("  gross profit:  %s (margin %s)\n",
		finance.Profit.Gross.Value,
		finance.Profit.Gross.MarginRatio.StringFixed(4),
	)

	if mrr, err := s.MRR(); err == nil {
		fmt.Printf("  MRR: %s\n", mrr)
	}
	if arr, err := s.ARR(); err == nil {
		fmt.Printf("  ARR: %s\n", arr)
	}

	for _, e := range s.Plan().SortedEntries() {
		revenue, err := s.Revenue(e.Month)
		if err != nil {
			continue
		}
		profit, err := s.Profit(e.Month)
		if err != nil {
			continue
		}
		margin, err := s.Margin(e.Month)
		if err != nil {
			continue
		}
		fmt.Printf("  %s  units=%s  revenue=%s  profit=%s  margin=%s\n",
			e.Month,
			e.Effective().String(),
			revenue,
			profit,
			margin.StringFixed(4),
		)
	}

	if next, ok := s.NextBillingDate(); ok {
		fmt.Printf("  next billing date: %s\n", next.Format("2006-01-02"))
	} else {
		fmt.Printf("  next billing date: n/a (no capacity plan)\n")
	}
}
