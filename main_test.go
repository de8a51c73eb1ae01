package main

import (
	"errors"
	"testing"

	"bike-rentals/pkg/calculator"
	"bike-rentals/pkg/database"
	"bike-rentals/pkg/models"
)

func TestSplitList(t *testing.T) {
	if got := splitList(""); got != nil {
		t.Fatalf("empty flag should mean no filter, got %v", got)
	}
	got := splitList("seguro, casco,")
	if len(got) != 2 || got[0] != "seguro" || got[1] != "casco" {
		t.Fatalf("got %v", got)
	}
}

func TestSplitList_ExplicitEmpty(t *testing.T) {
	for _, in := range []string{",", " , "} {
		got := splitList(in)
		if got == nil || len(got) != 0 {
			t.Fatalf("splitList(%q): want an empty non-nil filter, got %#v", in, got)
		}
	}
	// an empty filter lets no customer contribute
	records, err := database.LoadFile("data/alquileres.csv", false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	report, err := calculator.Run(records, models.Config{Services: splitList(",")})
	if err != nil || report.TopSpender != nil {
		t.Fatalf("got (%+v, %v)", report.TopSpender, err)
	}
}

func TestOptionalDate(t *testing.T) {
	d, err := optionalDate("")
	if err != nil || d != nil {
		t.Fatalf("empty: got (%v, %v)", d, err)
	}
	if _, err := optionalDate("2024-02-30"); !errors.Is(err, models.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestMonthIndex(t *testing.T) {
	if monthIndex("March") != 3 || monthIndex("December") != 12 || monthIndex("Marzo") != 0 {
		t.Fatal("unexpected month index")
	}
}

func TestSampleDataset(t *testing.T) {
	records, err := database.LoadFile("data/alquileres.csv", false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	report, err := calculator.Run(records, models.Config{Top: 3})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// 40 + 20 + 10 + 51 + 30
	if report.TotalRevenue.StringFixed(2) != "151.00" {
		t.Fatalf("revenue: got %s", report.TotalRevenue)
	}
	if report.TopSpender == nil || report.TopSpender.CustomerID != "11111111A" {
		t.Fatalf("top spender: got %+v", report.TopSpender)
	}
	if report.TopServiceByMonth["February"] != "casco" {
		t.Fatalf("February: got %v", report.TopServiceByMonth)
	}
}
