package models

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

/*
LOAD → enregistrement de location tel qu'il est lu depuis la source (CSV ou table SQL).
*/

// Record représente une location de vélo. Il n'est jamais modifié après le chargement.
type Record struct {
	CustomerName string
	CustomerID   string // identifiant client (ex: DNI), non unique entre locations
	StartDate    civil.Date
	EndDate      civil.Date // end >= start n'est pas vérifié
	Station      string
	BikeType     string
	DailyPrice   decimal.Decimal
	Services     []string // services additionnels, éventuellement vide
}

// Duration renvoie le nombre de jours entiers entre le début et la fin de la location.
func (r Record) Duration() int {
	return r.EndDate.DaysSince(r.StartDate)
}

// Amount = Duration × DailyPrice
func (r Record) Amount() decimal.Decimal {
	return r.DailyPrice.Mul(decimal.NewFromInt(int64(r.Duration())))
}

/*
COMPUTE → structures de résultat des requêtes
*/

// RentalStart identifie une location par le nom du client et sa date de début.
type RentalStart struct {
	CustomerName string
	StartDate    civil.Date
}

// CustomerSpend contient la dépense cumulée d'un client.
type CustomerSpend struct {
	CustomerID string
	Spend      decimal.Decimal
}

// StationRevenue contient le chiffre d'affaires d'une station.
type StationRevenue struct {
	Station string
	Rentals int
	Revenue decimal.Decimal
}

// Report regroupe le résultat de chaque requête pour un jeu de locations.
type Report struct {
	Records           int
	TotalRevenue      decimal.Decimal
	LongestRentals    []RentalStart
	TopSpender        *CustomerSpend // nil si aucun client ne contribue
	TopServiceByMonth map[string]string
	AverageGapDays    float64
	ByStation         []StationRevenue
}

/*
CONFIG → paramètres globaux
*/
// Config contient les paramètres passés au chargement et au calcul.
type Config struct {
	File     string      // chemin du CSV (prioritaire sur DSN)
	DSN      string      // mariadb://, mysql://, postgres:// ou DSN MySQL natif
	Table    string      // table SQL des locations
	From     *civil.Date // borne basse incluse sur StartDate, nil = pas de borne
	To       *civil.Date // borne haute incluse sur StartDate, nil = pas de borne
	Top      int         // nombre de locations les plus longues
	Services []string    // nil = pas de filtre
	Stations []string    // nil = pas de filtre
	Verbose  bool
}
