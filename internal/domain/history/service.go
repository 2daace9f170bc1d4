package history

import (
	"context"

	"github.com/healthspeak/healthspeak/internal/platform/respond"
	"github.com/healthspeak/healthspeak/internal/sanitize"
)

// maxTextLength bounds the original and simplified text fields.
const maxTextLength = 10000

// maxSearchQueryLength bounds free-text search queries.
const maxSearchQueryLength = 200

var validStatuses = map[string]bool{
	StatusPending: true, StatusCompleted: true, StatusFailed: true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add sanitizes and validates the caller-supplied fields, assigns defaults,
// and persists the item. The store owns id and both timestamps.
func (s *Service) Add(ctx context.Context, item *Item) (*Item, error) {
	item.OriginalText = sanitize.Clean(item.OriginalText)
	item.SimplifiedText = sanitize.Clean(item.SimplifiedText)
	item.Tags = cleanTags(item.Tags)

	var violations []string
	if res := sanitize.ValidateText(item.OriginalText, maxTextLength); !res.IsValid {
		for _, e := range res.Errors {
			violations = append(violations, "originalText: "+e)
		}
	}
	if res := sanitize.ValidateText(item.SimplifiedText, maxTextLength); !res.IsValid {
		for _, e := range res.Errors {
			violations = append(violations, "simplifiedText: "+e)
		}
	}
	if item.ProcessingStatus == "" {
		item.ProcessingStatus = StatusCompleted
	}
	if !validStatuses[item.ProcessingStatus] {
		violations = append(violations, "processingStatus must be one of pending, completed, failed")
	}
	if len(violations) > 0 {
		return nil, respond.NewValidationError("invalid history item", violations...)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, respond.NewStorageError("failed to save history item", err)
	}
	return item, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

// Update merges only the supplied fields. Text fields are sanitized and
// re-validated; updated_at refreshes even when the patch is empty.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Item, error) {
	var violations []string
	if patch.OriginalText != nil {
		cleaned := sanitize.Clean(*patch.OriginalText)
		if res := sanitize.ValidateText(cleaned, maxTextLength); !res.IsValid {
			for _, e := range res.Errors {
				violations = append(violations, "originalText: "+e)
			}
		}
		patch.OriginalText = &cleaned
	}
	if patch.SimplifiedText != nil {
		cleaned := sanitize.Clean(*patch.SimplifiedText)
		if res := sanitize.ValidateText(cleaned, maxTextLength); !res.IsValid {
			for _, e := range res.Errors {
				violations = append(violations, "simplifiedText: "+e)
			}
		}
		patch.SimplifiedText = &cleaned
	}
	if patch.ProcessingStatus != nil && !validStatuses[*patch.ProcessingStatus] {
		violations = append(violations, "processingStatus must be one of pending, completed, failed")
	}
	if patch.Tags != nil {
		cleaned := cleanTags(*patch.Tags)
		patch.Tags = &cleaned
	}
	if len(violations) > 0 {
		return nil, respond.NewValidationError("invalid history update", violations...)
	}

	return s.repo.Update(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// Search matches the query case-insensitively against the text fields,
// prescription diagnosis, medicine names, and tags, newest first.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]*Item, error) {
	if res := sanitize.ValidateText(query, maxSearchQueryLength); !res.IsValid {
		return nil, respond.NewValidationError("invalid search query", res.Errors...)
	}
	items, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, respond.NewStorageError("failed to search history", err)
	}
	return items, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Item, int, error) {
	items, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, respond.NewStorageError("failed to list history", err)
	}
	return items, total, nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, respond.NewStorageError("failed to aggregate history stats", err)
	}
	return stats, nil
}

func (s *Service) Backup(ctx context.Context) ([]*Item, error) {
	items, err := s.repo.Backup(ctx)
	if err != nil {
		return nil, respond.NewStorageError("failed to export history", err)
	}
	return items, nil
}

// Restore reinserts the supplied records through the normal add path, so
// caller-supplied ids and timestamps are discarded and new ones assigned.
// Failures do not roll back earlier inserts; the result reports both counts.
func (s *Service) Restore(ctx context.Context, items []*Item) *RestoreResult {
	res := &RestoreResult{}
	for _, it := range items {
		copy := *it
		if _, err := s.Add(ctx, &copy); err != nil {
			res.Failed++
			continue
		}
		res.Inserted++
	}
	res.Success = res.Failed == 0
	return res
}

func cleanTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if c := sanitize.Clean(t); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	return cleaned
}
