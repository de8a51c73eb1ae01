package models

import "errors"

// Erreurs de base, toujours enveloppées avec du contexte (fmt.Errorf + %w).
var (
	ErrIO          = errors.New("source illisible")
	ErrFormat      = errors.New("format invalide")
	ErrParse       = errors.New("date invalide")
	ErrEmptyResult = errors.New("aucun résultat")
)
