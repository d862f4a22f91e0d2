package repository

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"feedbackhub/internal/app/feedback/entity"
)

type memoryRecord struct {
	feedback entity.Feedback
	seq      int
}

// memoryRepository is the in-process fallback store. All access goes through
// one mutex; ids are a monotonically increasing counter rendered as a string.
type memoryRepository struct {
	mu      sync.Mutex
	records map[string]memoryRecord
	nextID  int
	nextSeq int
}

// NewMemoryRepository creates an empty in-memory feedback repository.
func NewMemoryRepository() FeedbackRepository {
	return &memoryRepository{
		records: make(map[string]memoryRecord),
	}
}

func (r *memoryRepository) Create(_ context.Context, fb *entity.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.nextSeq++

	fb.ID = strconv.Itoa(r.nextID)
	fb.CreatedAt = time.Now().UTC()

	r.records[fb.ID] = memoryRecord{feedback: *fb, seq: r.nextSeq}

	return nil
}

func (r *memoryRepository) GetAll(_ context.Context) ([]entity.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]memoryRecord, 0, len(r.records))
	for _, rec := range r.records {
		all = append(all, rec)
	}

	// Order by insertion first so the stable sort breaks created_at ties by
	// insertion order.
	sort.Slice(all, func(i, j int) bool {
		return all[i].seq < all[j].seq
	})
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].feedback.CreatedAt.After(all[j].feedback.CreatedAt)
	})

	feedback := make([]entity.Feedback, 0, len(all))
	for _, rec := range all {
		feedback = append(feedback, rec.feedback)
	}

	return feedback, nil
}

func (r *memoryRepository) ValidateID(id string) error {
	return validateMemoryID(id)
}

func (r *memoryRepository) Update(_ context.Context, id string, fields entity.FeedbackUpdate) error {
	if err := validateMemoryID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return ErrFeedbackNotFound
	}

	if fields.Rating != nil {
		rec.feedback.Rating = *fields.Rating
	}
	if fields.ReviewText != nil {
		rec.feedback.ReviewText = *fields.ReviewText
	}

	r.records[id] = rec

	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	if err := validateMemoryID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return ErrFeedbackNotFound
	}

	delete(r.records, id)

	return nil
}

// validateMemoryID rejects ids that could never have been issued by the
// counter, so malformed ids surface as 400 on this path too.
func validateMemoryID(id string) error {
	n, err := strconv.Atoi(id)
	if err != nil || n < 1 {
		return ErrInvalidFeedbackID
	}
	return nil
}
