package calculator

import (
	"fmt"
	"sort"

	"bike-rentals/pkg/models"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Toutes les fonctions sont pures : elles ne modifient jamais le slice reçu.

// TotalRevenue somme Duration × DailyPrice des locations dont StartDate est dans [from ; to].
// Une borne nil n'est pas appliquée.
func TotalRevenue(records []models.Record, from, to *civil.Date) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		if from != nil && r.StartDate.Before(*from) {
			continue
		}
		if to != nil && r.StartDate.After(*to) {
			continue
		}
		total = total.Add(r.Amount())
	}
	return total
}

// LongestRentals renvoie les n locations les plus longues (tri stable, durée décroissante).
func LongestRentals(records []models.Record, n int) []models.RentalStart {
	if n <= 0 {
		return []models.RentalStart{}
	}
	sorted := make([]models.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Duration() > sorted[j].Duration()
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	out := make([]models.RentalStart, 0, n)
	for _, r := range sorted[:n] {
		out = append(out, models.RentalStart{CustomerName: r.CustomerName, StartDate: r.StartDate})
	}
	return out
}

// TopSpendingCustomer renvoie le client avec la plus grosse dépense.
// Si services est actif, seules les locations ayant au moins un de ces services comptent.
// Égalité : le premier client rencontré dans l'ordre d'entrée l'emporte.
func TopSpendingCustomer(records []models.Record, services Labels) (models.CustomerSpend, error) {
	spend := map[string]decimal.Decimal{}
	var order []string
	for _, r := range records {
		if !services.MatchAny(r.Services) {
			continue
		}
		if _, ok := spend[r.CustomerID]; !ok {
			order = append(order, r.CustomerID)
		}
		spend[r.CustomerID] = spend[r.CustomerID].Add(r.Amount())
	}
	if len(order) == 0 {
		return models.CustomerSpend{}, fmt.Errorf("%w: aucun client pour ce filtre de services", models.ErrEmptyResult)
	}

	best := models.CustomerSpend{CustomerID: order[0], Spend: spend[order[0]]}
	for _, id := range order[1:] {
		if spend[id].GreaterThan(best.Spend) {
			best = models.CustomerSpend{CustomerID: id, Spend: spend[id]}
		}
	}
	return best, nil
}

// serviceCounter compte les services d'un mois en gardant l'ordre de première rencontre.
type serviceCounter struct {
	counts map[string]int
	order  []string
}

func (c *serviceCounter) add(label string) {
	if _, ok := c.counts[label]; !ok {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

// top: plus grand compte ; égalité → libellé rencontré en premier.
func (c *serviceCounter) top() (string, bool) {
	best, bestCount := "", 0
	for _, label := range c.order {
		if c.counts[label] > bestCount {
			best, bestCount = label, c.counts[label]
		}
	}
	return best, bestCount > 0
}

// TopServicePerMonth renvoie, par nom de mois (anglais, ex: "January") de StartDate,
// le service le plus contracté. Les années ne sont pas distinguées.
// Si stations est actif, seules ses stations comptent. Les mois sans service sont omis.
func TopServicePerMonth(records []models.Record, stations Labels) map[string]string {
	byMonth := map[string]*serviceCounter{}
	for _, r := range records {
		if !stations.Match(r.Station) || len(r.Services) == 0 {
			continue
		}
		month := r.StartDate.Month.String()
		c, ok := byMonth[month]
		if !ok {
			c = &serviceCounter{counts: map[string]int{}}
			byMonth[month] = c
		}
		for _, s := range r.Services {
			c.add(s)
		}
	}

	out := make(map[string]string, len(byMonth))
	for month, c := range byMonth {
		if label, ok := c.top(); ok {
			out[month] = label
		}
	}
	return out
}

// AverageGapBetweenRentals renvoie la moyenne, en jours, des écarts entre dates de début
// consécutives (tri stable par StartDate). 0 s'il y a moins de deux locations.
func AverageGapBetweenRentals(records []models.Record) float64 {
	if len(records) < 2 {
		return 0
	}
	starts := make([]civil.Date, len(records))
	for i, r := range records {
		starts[i] = r.StartDate
	}
	sort.SliceStable(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	sum := 0
	for i := 1; i < len(starts); i++ {
		sum += starts[i].DaysSince(starts[i-1])
	}
	return float64(sum) / float64(len(starts)-1)
}

// IndexByStation regroupe les locations par station, dans l'ordre d'entrée.
func IndexByStation(records []models.Record) map[string][]models.Record {
	idx := map[string][]models.Record{}
	for _, r := range records {
		idx[r.Station] = append(idx[r.Station], r)
	}
	return idx
}

// RevenueByStation renvoie le chiffre d'affaires par station, dans l'ordre de première apparition.
func RevenueByStation(records []models.Record) []models.StationRevenue {
	pos := map[string]int{}
	var out []models.StationRevenue
	for _, r := range records {
		i, ok := pos[r.Station]
		if !ok {
			i = len(out)
			pos[r.Station] = i
			out = append(out, models.StationRevenue{Station: r.Station, Revenue: decimal.Zero})
		}
		out[i].Rentals++
		out[i].Revenue = out[i].Revenue.Add(r.Amount())
	}
	return out
}
