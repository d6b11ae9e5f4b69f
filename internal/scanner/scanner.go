package scanner

import (
	"fmt"
	"os"
	"strings"

	"ticketsweep/internal/services"
	"ticketsweep/internal/ticket"
)

// Scan lists the immediate subdirectories of dir and returns the ticket
// identifiers embedded in their names, in listing order with duplicates
// collapsed. Names without an identifier are ignored. An unreadable
// directory is fatal to the evaluation cycle.
func Scan(dir string) ([]ticket.ID, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "scanner", "list directory",
			fmt.Sprintf("backups location %s is missing or unreadable", dir), err)
	}

	seen := make(map[ticket.ID]struct{})
	var ids []ticket.ID
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id, ok := ticket.Extract(entry.Name())
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// MatchFolders returns the names of every immediate subdirectory of dir that
// contains id. Several folders can carry the same identifier; callers decide
// whether that is an error.
func MatchFolders(dir string, id ticket.ID) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var matches []string
	for _, entry := range entries {
		if entry.IsDir() && strings.Contains(entry.Name(), id.String()) {
			matches = append(matches, entry.Name())
		}
	}
	return matches, nil
}

// ResolveFolder locates the single folder under dir matching id. No match
// yields ErrNotFound; more than one match is an explicit ambiguity error
// rather than a silent first pick.
func ResolveFolder(dir string, id ticket.ID) (string, error) {
	matches, err := MatchFolders(dir, id)
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", services.Wrap(services.ErrNotFound, "scanner", "resolve folder",
			fmt.Sprintf("no folder for %s under %s", id, dir), nil)
	case 1:
		return matches[0], nil
	default:
		return "", services.Wrap(services.ErrAmbiguous, "scanner", "resolve folder",
			fmt.Sprintf("%d folders match %s: %s", len(matches), id, strings.Join(matches, ", ")), nil)
	}
}
