package calculator

// Labels est un filtre optionnel sur des libellés (services, stations).
// La valeur zéro ne filtre rien ; OnlyLabels() sans argument ne laisse rien passer.
type Labels struct {
	set    map[string]struct{}
	active bool
}

// AnyLabel renvoie le filtre « pas de filtre ».
func AnyLabel() Labels {
	return Labels{}
}

// OnlyLabels restreint aux libellés donnés (comparaison exacte, sensible à la casse).
func OnlyLabels(labels ...string) Labels {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return Labels{set: set, active: true}
}

// LabelsFrom: nil → AnyLabel, sinon OnlyLabels.
func LabelsFrom(labels []string) Labels {
	if labels == nil {
		return AnyLabel()
	}
	return OnlyLabels(labels...)
}

// Active indique si le filtre restreint quelque chose.
func (l Labels) Active() bool {
	return l.active
}

// Match renvoie true si le filtre est inactif ou contient label.
func (l Labels) Match(label string) bool {
	if !l.active {
		return true
	}
	_, ok := l.set[label]
	return ok
}

// MatchAny renvoie true si le filtre est inactif ou si au moins un libellé est dans l'ensemble.
func (l Labels) MatchAny(labels []string) bool {
	if !l.active {
		return true
	}
	for _, label := range labels {
		if _, ok := l.set[label]; ok {
			return true
		}
	}
	return false
}
