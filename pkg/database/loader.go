package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"bike-rentals/pkg/models"

	"cloud.google.com/go/civil"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/schollz/progressbar/v3"
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Open DSN mariadb://, mysql:// ou postgres:// → driver + DSN natif
func Open(dsn string) (*sqlx.DB, string, error) {
	driver, nativeDSN, err := toDriverDSN(dsn)
	if err != nil {
		return nil, "", err
	}
	db, err := sqlx.Open(driver, nativeDSN)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", models.ErrIO, err)
	}
	// Lecture seule, une passe : peu de connexions suffisent.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nativeDSN, nil
}

func toDriverDSN(dsn string) (string, string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		// lib/pq accepte directement les URL
		return "postgres", dsn, nil
	case strings.HasPrefix(dsn, "mariadb://"), strings.HasPrefix(dsn, "mysql://"):
		out, err := toMySQLDSN(dsn)
		return "mysql", out, err
	}
	return "mysql", dsn, nil
}

func toMySQLDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	user := ""
	pass := ""
	if u.User != nil {
		user = u.User.Username()
		pw, _ := u.User.Password()
		pass = pw
	}
	host := u.Host
	db := strings.TrimPrefix(u.Path, "/")
	if user == "" || host == "" || db == "" {
		return "", fmt.Errorf("dsn incomplet (user/host/db)")
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
		user, pass, host, db), nil
}

// rentalRow est une ligne brute de la table des locations.
// Les dates arrivent en time.Time (parseTime=true, lib/pq) ou en texte (DSN MySQL natif sans parseTime).
type rentalRow struct {
	CustomerName string         `db:"customer_name"`
	CustomerID   string         `db:"customer_id"`
	StartDate    any            `db:"start_date"`
	EndDate      any            `db:"end_date"`
	Station      string         `db:"station"`
	BikeType     string         `db:"bike_type"`
	DailyPrice   string         `db:"daily_price"`
	Services     sql.NullString `db:"services"`
}

func (r rentalRow) toRecord() (models.Record, error) {
	start, err := sqlDate(r.StartDate)
	if err != nil {
		return models.Record{}, err
	}
	end, err := sqlDate(r.EndDate)
	if err != nil {
		return models.Record{}, err
	}
	price, err := parsePrice(r.DailyPrice)
	if err != nil {
		return models.Record{}, err
	}
	return models.Record{
		CustomerName: r.CustomerName,
		CustomerID:   r.CustomerID,
		StartDate:    start,
		EndDate:      end,
		Station:      r.Station,
		BikeType:     r.BikeType,
		DailyPrice:   price,
		Services:     splitServices(r.Services.String),
	}, nil
}

// sqlDate: DATE -> civil.Date sans dépendre du DateStyle de la session.
func sqlDate(v any) (civil.Date, error) {
	switch d := v.(type) {
	case time.Time:
		return civil.DateOf(d), nil
	case []byte:
		return models.ParseDate(strings.TrimSpace(string(d)))
	case string:
		return models.ParseDate(strings.TrimSpace(d))
	}
	return civil.Date{}, fmt.Errorf("%w: date de type %T", models.ErrParse, v)
}

// LoadRecords lit toutes les locations d'une table SQL.
// Pas d'ORDER BY : l'ordre des locations est celui renvoyé par le serveur.
// Mêmes règles de conversion que le CSV : la première ligne invalide interrompt le chargement.
func LoadRecords(ctx context.Context, db *sqlx.DB, tableName string, verbose bool) ([]models.Record, error) {
	if !tableNameRe.MatchString(tableName) {
		return nil, fmt.Errorf("%w: table invalide %q", models.ErrFormat, tableName)
	}

	var bar *progressbar.ProgressBar
	if verbose {
		var total int
		countQ := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, tableName)
		if err := db.GetContext(ctx, &total, countQ); err == nil {
			log.Printf("[DEBUG] Locations dans %s: %d", tableName, total)
			bar = progressbar.Default(int64(total))
		} else {
			log.Printf("[DEBUG] count error: %v", err)
		}
	}

	q := fmt.Sprintf(`
		SELECT
			customer_name,
			customer_id,
			start_date,
			end_date,
			station,
			bike_type,
			daily_price,
			services
		FROM %s
	`, tableName)

	rows, err := db.QueryxContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrIO, err)
	}
	defer rows.Close()

	var records []models.Record
	n := 0
	for rows.Next() {
		n++
		var row rentalRow
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("%w: ligne %d: %v", models.ErrIO, n, err)
		}
		rec, err := row.toRecord()
		if err != nil {
			return nil, fmt.Errorf("%s ligne %d: %w", tableName, n, err)
		}
		records = append(records, rec)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrIO, err)
	}

	if verbose {
		log.Printf("[INFO] %d locations chargées depuis %s", len(records), tableName)
	}
	return records, nil
}
