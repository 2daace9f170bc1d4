package history

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/healthspeak/healthspeak/internal/platform/respond"
)

// mockRepo is an in-memory Repository with the same contract as the Postgres
// implementation: ids and timestamps assigned on create, malformed ids
// collapsing to ErrNotFound, and idempotent deletes.
type mockRepo struct {
	items map[string]*Item
	seq   int
	base  time.Time
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		items: make(map[string]*Item),
		base:  time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func (m *mockRepo) clock() time.Time {
	m.seq++
	return m.base.Add(time.Duration(m.seq) * time.Second)
}

func (m *mockRepo) Create(_ context.Context, item *Item) error {
	item.ID = uuid.New()
	now := m.clock()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.Tags == nil {
		item.Tags = []string{}
	}
	cp := *item
	m.items[item.ID.String()] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id string) (*Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	it, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, id string, patch Patch) (*Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	it, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.OriginalText != nil {
		it.OriginalText = *patch.OriginalText
	}
	if patch.SimplifiedText != nil {
		it.SimplifiedText = *patch.SimplifiedText
	}
	if patch.Prescription != nil {
		it.Prescription = patch.Prescription
	}
	if patch.ImageURL != nil {
		it.ImageURL = patch.ImageURL
	}
	if patch.ProcessingStatus != nil {
		it.ProcessingStatus = *patch.ProcessingStatus
	}
	if patch.Tags != nil {
		it.Tags = *patch.Tags
	}
	it.UpdatedAt = m.clock()
	cp := *it
	return &cp, nil
}

func (m *mockRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

func (m *mockRepo) Search(_ context.Context, query string, limit int) ([]*Item, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	matches := []*Item{}
	if query == "" {
		return matches, nil
	}
	for _, it := range m.items {
		if m.matches(it, query) {
			cp := *it
			matches = append(matches, &cp)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (m *mockRepo) matches(it *Item, query string) bool {
	if strings.Contains(strings.ToLower(it.OriginalText), query) ||
		strings.Contains(strings.ToLower(it.SimplifiedText), query) {
		return true
	}
	for _, t := range it.Tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	if it.Prescription != nil {
		for _, d := range it.Prescription.Diagnosis {
			if strings.Contains(strings.ToLower(d), query) {
				return true
			}
		}
		for _, med := range it.Prescription.Medicines {
			if strings.Contains(strings.ToLower(med.Name), query) {
				return true
			}
		}
	}
	return false
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Item, int, error) {
	all := m.sorted(false)
	total := len(all)
	if offset >= len(all) {
		return []*Item{}, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (m *mockRepo) Stats(_ context.Context) (*Stats, error) {
	s := &Stats{}
	cutoffWeek := time.Now().AddDate(0, 0, -7)
	cutoffMonth := time.Now().AddDate(0, 0, -30)
	for _, it := range m.items {
		s.Total++
		if it.CreatedAt.After(cutoffWeek) {
			s.ThisWeek++
		}
		if it.CreatedAt.After(cutoffMonth) {
			s.ThisMonth++
		}
		switch it.ProcessingStatus {
		case StatusPending:
			s.Pending++
		case StatusCompleted:
			s.Completed++
		case StatusFailed:
			s.Failed++
		}
	}
	return s, nil
}

func (m *mockRepo) Backup(_ context.Context) ([]*Item, error) {
	return m.sorted(true), nil
}

func (m *mockRepo) sorted(asc bool) []*Item {
	out := make([]*Item, 0, len(m.items))
	for _, it := range m.items {
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if asc {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func TestAddAndGetByID(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	created, err := svc.Add(ctx, &Item{
		OriginalText:   "Tab PCM 500mg bid x 5 days",
		SimplifiedText: "Take one paracetamol tablet twice a day for five days",
		Tags:           []string{"fever"},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected a generated id")
	}
	if created.ProcessingStatus != StatusCompleted {
		t.Errorf("default status = %q, want %q", created.ProcessingStatus, StatusCompleted)
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("createdAt %v != updatedAt %v on insert", created.CreatedAt, created.UpdatedAt)
	}

	got, err := svc.GetByID(ctx, created.ID.String())
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.OriginalText != created.OriginalText {
		t.Errorf("round-trip originalText = %q, want %q", got.OriginalText, created.OriginalText)
	}
}

func TestAddSanitizesText(t *testing.T) {
	svc := NewService(newMockRepo())

	created, err := svc.Add(context.Background(), &Item{
		OriginalText:   "  Take <b>two</b> tablets daily  ",
		SimplifiedText: "Take two tablets every day",
		Tags:           []string{" <i>fever</i> ", ""},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if created.OriginalText != "Take two tablets daily" {
		t.Errorf("originalText = %q, want tags stripped and trimmed", created.OriginalText)
	}
	if len(created.Tags) != 1 || created.Tags[0] != "fever" {
		t.Errorf("tags = %v, want [fever]", created.Tags)
	}
}

func TestAddRejectsScriptContent(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Add(context.Background(), &Item{
		OriginalText:   "<script>alert(1)</script>",
		SimplifiedText: "take one tablet daily",
	})
	var ve *respond.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAddRejectsUnknownStatus(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Add(context.Background(), &Item{
		OriginalText:     "Tab PCM 500mg bid",
		SimplifiedText:   "Take one tablet twice a day",
		ProcessingStatus: "done",
	})
	var ve *respond.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Details) == 0 || !strings.Contains(ve.Details[0], "processingStatus") {
		t.Errorf("details = %v, want processingStatus violation", ve.Details)
	}
}

func TestGetByIDMalformedID(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("malformed id: got %v, want ErrNotFound", err)
	}
}

func TestUpdatePartial(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	created, err := svc.Add(ctx, &Item{
		OriginalText:   "Tab PCM 500mg bid",
		SimplifiedText: "Take one tablet twice a day",
		Tags:           []string{"fever"},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	status := StatusPending
	updated, err := svc.Update(ctx, created.ID.String(), Patch{ProcessingStatus: &status})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ProcessingStatus != StatusPending {
		t.Errorf("status = %q, want pending", updated.ProcessingStatus)
	}
	if updated.OriginalText != created.OriginalText {
		t.Errorf("untouched field changed: %q", updated.OriginalText)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updatedAt did not advance: %v", updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("createdAt changed on update: %v", updated.CreatedAt)
	}
}

func TestUpdateEmptyPatchRefreshesTimestampOnly(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	created, err := svc.Add(ctx, &Item{
		OriginalText:   "Tab PCM 500mg bid",
		SimplifiedText: "Take one tablet twice a day",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID.String(), Patch{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.OriginalText != created.OriginalText || updated.SimplifiedText != created.SimplifiedText {
		t.Error("empty patch changed a field")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("empty patch did not refresh updatedAt")
	}
}

func TestUpdateUnknownID(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Update(context.Background(), uuid.New().String(), Patch{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	created, err := svc.Add(ctx, &Item{
		OriginalText:   "Tab PCM 500mg bid",
		SimplifiedText: "Take one tablet twice a day",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	removed, err := svc.Delete(ctx, created.ID.String())
	if err != nil || !removed {
		t.Fatalf("first delete: removed=%v err=%v", removed, err)
	}
	removed, err = svc.Delete(ctx, created.ID.String())
	if err != nil || removed {
		t.Fatalf("second delete: removed=%v err=%v, want false,nil", removed, err)
	}
	if _, err := svc.GetByID(ctx, created.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted item still readable: %v", err)
	}
}

func TestSearchRejectsBlankQuery(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Search(context.Background(), "   ", 20)
	var ve *respond.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for blank query, got %v", err)
	}
}

func TestSearchMatchesMedicineNames(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	if _, err := svc.Add(ctx, &Item{
		OriginalText:   "Amoxicillin 500mg tid x 7 days",
		SimplifiedText: "Take one amoxicillin capsule three times a day for a week",
		Prescription: &Prescription{
			Medicines: []LineItem{{Name: "Amoxicillin", Dosage: "500mg"}},
		},
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := svc.Add(ctx, &Item{
		OriginalText:   "Cetirizine 10mg qhs",
		SimplifiedText: "Take one cetirizine tablet every night at bedtime",
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	items, err := svc.Search(ctx, "amoxicillin", 20)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d results, want 1", len(items))
	}
	if items[0].Prescription == nil || items[0].Prescription.Medicines[0].Name != "Amoxicillin" {
		t.Error("wrong record matched")
	}
}

func TestStatsEmptyStore(t *testing.T) {
	svc := NewService(newMockRepo())

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 0 || stats.Pending != 0 || stats.Completed != 0 || stats.Failed != 0 {
		t.Errorf("empty store stats = %+v, want all zero", stats)
	}
}

func TestStatsCountsByStatus(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	for _, status := range []string{StatusCompleted, StatusCompleted, StatusPending, StatusFailed} {
		if _, err := svc.Add(ctx, &Item{
			OriginalText:     "Tab PCM 500mg bid for fever",
			SimplifiedText:   "Take one tablet twice a day",
			ProcessingStatus: status,
		}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 4 || stats.Completed != 2 || stats.Pending != 1 || stats.Failed != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRestoreAssignsFreshIdentity(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	oldID := uuid.New()
	oldTime := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	res := svc.Restore(ctx, []*Item{{
		ID:             oldID,
		OriginalText:   "Tab PCM 500mg bid",
		SimplifiedText: "Take one tablet twice a day",
		CreatedAt:      oldTime,
		UpdatedAt:      oldTime,
	}})
	if !res.Success || res.Inserted != 1 || res.Failed != 0 {
		t.Fatalf("restore = %+v", res)
	}

	items, err := svc.Backup(ctx)
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items", len(items))
	}
	if items[0].ID == oldID {
		t.Error("restore kept the caller-supplied id")
	}
	if items[0].CreatedAt.Equal(oldTime) {
		t.Error("restore kept the caller-supplied timestamp")
	}
}

func TestRestoreReportsPartialFailure(t *testing.T) {
	svc := NewService(newMockRepo())

	res := svc.Restore(context.Background(), []*Item{
		{OriginalText: "Tab PCM 500mg bid", SimplifiedText: "Take one tablet twice a day"},
		{OriginalText: "", SimplifiedText: ""},
	})
	if res.Success {
		t.Error("partial failure reported as success")
	}
	if res.Inserted != 1 || res.Failed != 1 {
		t.Errorf("restore = %+v, want 1 inserted 1 failed", res)
	}
}
