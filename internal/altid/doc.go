// Package altid merges repeated properties that are alternate
// representations of one logical value.
//
// SortByPreference is the preference sorter: a stable order by PREF rank,
// absent ranks last. Aggregate partitions members by ALTID, picks a primary
// per group and files the other members as per-language overlays.
package altid
