package dump

import "github.com/sdtd-tools/localedump/internal/extract"

// Duplicate is a key defined by more than one contributing file. Duplicates
// are kept in the dump; they are only reported.
type Duplicate struct {
	Key   string
	Paths []string // Owning files in discovery order.
}

// FindDuplicates returns keys claimed by two or more files, ordered by first
// appearance. A key repeated inside a single file is not a duplicate.
func FindDuplicates(results []extract.FileResult) []Duplicate {
	owners := make(map[string][]string) // key → files that define it
	var order []string
	for _, r := range results {
		if r.Status != extract.StatusContributed {
			continue
		}
		for _, row := range r.Rows {
			paths, seen := owners[row.Key]
			if !seen {
				order = append(order, row.Key)
			}
			if len(paths) > 0 && paths[len(paths)-1] == r.Path {
				continue
			}
			owners[row.Key] = append(paths, r.Path)
		}
	}

	var dups []Duplicate
	for _, k := range order {
		if paths := owners[k]; len(paths) > 1 {
			dups = append(dups, Duplicate{Key: k, Paths: paths})
		}
	}
	return dups
}
