package calculator

import (
	"errors"
	"fmt"
	"log"
	"time"

	"bike-rentals/pkg/models"

	"cloud.google.com/go/civil"
)

// Run évalue toutes les requêtes sur le même jeu de locations.
// ErrEmptyResult pour le meilleur client n'est pas fatal : TopSpender reste nil.
func Run(records []models.Record, cfg models.Config) (models.Report, error) {
	if cfg.From != nil && cfg.To != nil && cfg.To.Before(*cfg.From) {
		return models.Report{}, fmt.Errorf("%w: to (%s) < from (%s)", models.ErrFormat, cfg.To, cfg.From)
	}

	report := models.Report{
		Records:           len(records),
		TotalRevenue:      TotalRevenue(records, cfg.From, cfg.To),
		LongestRentals:    LongestRentals(records, cfg.Top),
		TopServiceByMonth: TopServicePerMonth(records, LabelsFrom(cfg.Stations)),
		AverageGapDays:    AverageGapBetweenRentals(records),
		ByStation:         RevenueByStation(records),
	}

	services := LabelsFrom(cfg.Services)
	if cfg.Verbose && services.Active() {
		log.Printf("[INFO] filtre services=%v", cfg.Services)
	}
	top, err := TopSpendingCustomer(records, services)
	switch {
	case err == nil:
		report.TopSpender = &top
	case errors.Is(err, models.ErrEmptyResult):
		if cfg.Verbose {
			log.Printf("[INFO] %v", err)
		}
	default:
		return models.Report{}, err
	}

	if cfg.Verbose {
		log.Printf("[INFO] %d locations -> CA=%s | stations=%d mois=%d écart moyen=%.2fj",
			report.Records, report.TotalRevenue.StringFixed(2), len(report.ByStation),
			len(report.TopServiceByMonth), report.AverageGapDays)
	}
	return report, nil
}

// MonthRange("MMYYYY") -> [1er jour ; dernier jour] du mois
func MonthRange(mmyyyy string) (civil.Date, civil.Date, error) {
	first, err := parseMonth(mmyyyy)
	if err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	return first, civil.DateOf(first.In(time.UTC).AddDate(0, 1, -1)), nil
}

// parseMonth("MMYYYY") -> 1er jour du mois
func parseMonth(mmyyyy string) (civil.Date, error) {
	if len(mmyyyy) != 6 {
		return civil.Date{}, fmt.Errorf("%w: format attendu MMYYYY (ex: 012024)", models.ErrParse)
	}
	for i := 0; i < len(mmyyyy); i++ {
		if mmyyyy[i] < '0' || mmyyyy[i] > '9' {
			return civil.Date{}, fmt.Errorf("%w: mois %q non numérique", models.ErrParse, mmyyyy)
		}
	}
	month := int(mmyyyy[0]-'0')*10 + int(mmyyyy[1]-'0')
	year := int(mmyyyy[2]-'0')*1000 + int(mmyyyy[3]-'0')*100 + int(mmyyyy[4]-'0')*10 + int(mmyyyy[5]-'0')
	if month < 1 || month > 12 {
		return civil.Date{}, fmt.Errorf("%w: mois invalide", models.ErrParse)
	}
	return civil.Date{Year: year, Month: time.Month(month), Day: 1}, nil
}
