// Seeds a few weeks of plausible visit rows so the dashboard and chart have
// something to show on a fresh database.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"pangkas/models"
	"pangkas/pkg/visitstats"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func mustDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return gdb
}

func main() {
	days := flag.Int("days", 30, "number of past days to seed")
	perDay := flag.Int("per-day", 6, "maximum visits per day")
	dry := flag.Bool("dry-run", true, "dry-run: don't write to DB")
	flag.Parse()

	gdb := mustDBFromEnv()

	categories := []visitstats.Category{visitstats.CategoryChild, visitstats.CategoryAdult}
	created := 0
	for d := 0; d < *days; d++ {
		date := time.Now().AddDate(0, 0, -d).Format("2006-01-02")
		for i := 0; i < 1+rand.Intn(*perDay); i++ {
			cat := categories[rand.Intn(len(categories))]
			v := models.Visit{
				Date:     date,
				Time:     fmt.Sprintf("%02d:%02d", 9+rand.Intn(10), rand.Intn(60)),
				Category: string(cat),
				Price:    visitstats.PriceFor(cat),
			}
			if *dry {
				fmt.Printf("would create %s %s %s %d\n", v.Date, v.Time, v.Category, v.Price)
				continue
			}
			if err := gdb.Create(&v).Error; err != nil {
				log.Fatalf("create visit: %v", err)
			}
			created++
		}
	}
	if *dry {
		fmt.Println("dry-run: nothing written (pass -dry-run=false to seed)")
		return
	}
	fmt.Printf("seeded %d visits\n", created)
}
