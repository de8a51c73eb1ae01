package database

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"bike-rentals/pkg/models"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
)

// Colonnes attendues, dans l'ordre :
// nom, id, date début, date fin, station, type de vélo, prix/jour, services
const fieldsPerRow = 8

// LoadFile ouvre le CSV et charge les locations. En mode verbeux, une barre de progression
// (en octets) est affichée sur stderr.
func LoadFile(path string, verbose bool) ([]models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrIO, err)
	}
	defer f.Close()

	var src io.Reader = f
	if verbose {
		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrIO, err)
		}
		bar := progressbar.DefaultBytes(info.Size(), "lecture "+info.Name())
		src = io.TeeReader(f, bar)
		defer func() { _ = bar.Finish() }()
	}

	records, err := LoadCSV(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if verbose {
		log.Printf("[INFO] %d locations chargées depuis %s", len(records), path)
	}
	return records, nil
}

// LoadCSV lit une source CSV dont la première ligne est un en-tête (ignoré).
// Le champ services est un seul champ CSV : "lock,helmet" doit être entre guillemets.
// La première ligne invalide interrompt tout le chargement.
func LoadCSV(r io.Reader) ([]models.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // nombre de colonnes vérifié ligne par ligne

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: en-tête manquant", models.ErrFormat)
		}
		return nil, readError(err)
	}

	var records []models.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, readError(err)
		}
		line, _ := reader.FieldPos(0)
		if len(row) != fieldsPerRow {
			return nil, fmt.Errorf("%w: ligne %d: %d colonnes, %d attendues",
				models.ErrFormat, line, len(row), fieldsPerRow)
		}
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("ligne %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseRow convertit les 8 champs d'une ligne en Record.
func parseRow(row []string) (models.Record, error) {
	start, err := models.ParseDate(strings.TrimSpace(row[2]))
	if err != nil {
		return models.Record{}, err
	}
	end, err := models.ParseDate(strings.TrimSpace(row[3]))
	if err != nil {
		return models.Record{}, err
	}
	price, err := parsePrice(row[6])
	if err != nil {
		return models.Record{}, err
	}
	return models.Record{
		CustomerName: row[0],
		CustomerID:   row[1],
		StartDate:    start,
		EndDate:      end,
		Station:      row[4],
		BikeType:     row[5],
		DailyPrice:   price,
		Services:     splitServices(row[7]),
	}, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: prix %q non numérique", models.ErrFormat, s)
	}
	if price.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: prix %q négatif", models.ErrFormat, s)
	}
	return price, nil
}

// splitServices("lock, helmet,,") -> [lock helmet] ; "" -> []
func splitServices(s string) []string {
	services := []string{}
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			services = append(services, tok)
		}
	}
	return services
}

// readError distingue un CSV mal formé (guillemets...) d'une erreur de lecture.
func readError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return fmt.Errorf("%w: %v", models.ErrFormat, perr)
	}
	return fmt.Errorf("%w: %v", models.ErrIO, err)
}
