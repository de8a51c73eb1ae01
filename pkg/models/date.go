package models

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// ParseDate("YYYY-MM-DD") -> civil.Date
// Échoue avec ErrParse si le format ne correspond pas ou si la date n'existe pas (mois 13, 30 février...) :
// time.Parse rejette déjà les dates hors calendrier.
func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: date %q: format attendu YYYY-MM-DD", ErrParse, s)
	}
	return d, nil
}
