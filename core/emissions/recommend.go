package emissions

import "sort"

var advisories = [...]string{
	SourceCoal:        "Coal dominates: fuel switch, heat recovery, and combustion optimization.",
	SourceElectricity: "High electricity emissions: prioritize on-site solar/PPA and efficiency.",
	SourceProcess:     "Process heavy: increase scrap charge and explore alternative feedstocks.",
}

// Advisory returns the fixed advice for a dominant source.
func Advisory(s Source) string {
	if s < 0 || int(s) >= len(advisories) {
		return ""
	}
	return advisories[s]
}

// Rank orders the breakdown entries by descending value. Ties keep the
// coal, electricity, process order.
func Rank(b Breakdown) []Entry {
	entries := b.Entries()
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Value > entries[j].Value })
	return entries
}

// Recommend returns one advisory for every source tied for the largest
// contribution, whatever its sign.
func Recommend(b Breakdown) []string {
	ranked := Rank(b)
	top := ranked[0].Value
	var out []string
	for _, e := range ranked {
		if e.Value != top {
			break
		}
		out = append(out, Advisory(e.Source))
	}
	return out
}
