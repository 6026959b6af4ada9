package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
)

// ActivityLog keeps the audit trail in process memory.
type ActivityLog struct {
	mu      sync.RWMutex
	entries []*model.Activity
}

var _ interfaces.ActivityLog = &ActivityLog{}

func NewActivityLog() *ActivityLog {
	return &ActivityLog{}
}

func (l *ActivityLog) Record(ctx context.Context, activity *model.Activity) error {
	entry := *activity
	if entry.ID == "" {
		entry.ID = model.NewID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, &entry)
	*activity = entry
	return nil
}

func (l *ActivityLog) List(ctx context.Context, filter model.ActivityFilter) ([]*model.Activity, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*model.Activity, 0)
	for _, a := range l.entries {
		if filter.Match(a) {
			copied := *a
			result = append(result, &copied)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].ID > result[j].ID
		}
		return result[i].Timestamp.After(result[j].Timestamp)
	})

	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}
