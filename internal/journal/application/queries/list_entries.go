package queries

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/journal/domain"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

// ListEntriesQuery contains the parameters for listing entries.
// A zero From/To lists everything; Limit 0 means no limit.
type ListEntriesQuery struct {
	UserID uuid.UUID
	From   sharedDomain.Date
	To     sharedDomain.Date
	Limit  int
}

// ListEntriesHandler handles the ListEntriesQuery.
type ListEntriesHandler struct {
	entryRepo domain.EntryRepository
}

// NewListEntriesHandler creates a new ListEntriesHandler.
func NewListEntriesHandler(entryRepo domain.EntryRepository) *ListEntriesHandler {
	return &ListEntriesHandler{entryRepo: entryRepo}
}

// Handle executes the ListEntriesQuery, newest first.
func (h *ListEntriesHandler) Handle(ctx context.Context, query ListEntriesQuery) ([]EntryDTO, error) {
	var entries []*domain.Entry
	var err error

	if !query.From.IsZero() || !query.To.IsZero() {
		from, to := query.From, query.To
		if to.IsZero() {
			to = sharedDomain.Today()
		}
		entries, err = h.entryRepo.FindRange(ctx, query.UserID, from, to)
	} else {
		entries, err = h.entryRepo.FindByUserID(ctx, query.UserID)
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[j].Date().Before(entries[i].Date()) })

	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, toEntryDTO(entry))
		if query.Limit > 0 && len(dtos) == query.Limit {
			break
		}
	}

	return dtos, nil
}
