package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"rental-manager/database"
	httpServices "rental-manager/httpServices/beds24"
	"rental-manager/services/bookingsync"
	"rental-manager/utils"
)

// Reconciliation entry point for cron and one-off imports:
//
//	go run tools/sync.go -days 365
//	go run tools/sync.go -start 2023-01-01 -end 2023-12-31 -include-cancelled
//	go run tools/sync.go -days 90 -property 3
func main() {
	days := flag.Int("days", 365, "sync window length in days, starting today")
	startStr := flag.String("start", "", "explicit window start (YYYY-MM-DD), requires -end")
	endStr := flag.String("end", "", "explicit window end (YYYY-MM-DD), requires -start")
	propertyID := flag.Uint("property", 0, "restrict the sync to one property id")
	includeCancelled := flag.Bool("include-cancelled", false, "fetch all statuses except Cancelled/Black/Declined (past-booking import)")
	flag.Parse()

	var start, end time.Time
	if *startStr != "" || *endStr != "" {
		var err error
		start, err = time.Parse("2006-01-02", *startStr)
		if err == nil {
			end, err = time.Parse("2006-01-02", *endStr)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "❌ Invalid date format. Please use YYYY-MM-DD for -start and -end.")
			os.Exit(1)
		}
	} else {
		start, end = utils.SyncWindow(*days)
	}

	db, err := database.InitDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to connect to the database: %v\n", err)
		os.Exit(1)
	}

	opts := bookingsync.FilterOptions{}
	if *includeCancelled {
		opts.IncludeCancelled = true
		opts.ExcludedStatuses = map[string]bool{
			"Cancelled": true,
			"Black":     true,
			"Declined":  true,
		}
	}

	client := httpServices.NewClient(
		os.Getenv("BEDS24_BASE_URL"),
		os.Getenv("BEDS24_USERNAME"),
		os.Getenv("BEDS24_PASSWORD"),
	)
	service := bookingsync.NewService(db, client)

	fmt.Printf("Syncing bookings from %s to %s...\n", start.Format("2006-01-02"), end.Format("2006-01-02"))

	bookings, err := service.FetchBookings(start, end, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	var propFilter *uint
	if *propertyID != 0 {
		id := uint(*propertyID)
		propFilter = &id
	}

	counts, err := service.Reconcile(bookings, start, end, propFilter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Processed %d valid bookings from API.\n", len(bookings))
	fmt.Printf("New: %d, Updated: %d, Cancelled: %d, Missing property: %d\n",
		counts.Created, counts.Updated, counts.Cancelled, counts.MissingProperty)
	fmt.Println("✅ --- Sync complete! ---")
}
