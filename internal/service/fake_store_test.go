package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/voxcrm/backend/internal/models"
)

// fakeStore is an in-memory stand-in for db.Store implementing the store
// interfaces the services consume. Lookups return copies so callers cannot
// mutate stored records without going through an update, mirroring how the
// real store behaves. mutations counts every write.
type fakeStore struct {
	mu           sync.Mutex
	users        []models.User
	customers    []models.Customer
	calls        []models.VoiceCall
	appointments []models.Appointment
	cursors      map[string]models.SheetSyncCursor
	nextID       int
	mutations    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{cursors: map[string]models.SheetSyncCursor{}}
}

func (f *fakeStore) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeStore) CreateUser(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = f.id("user")
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	f.users = append(f.users, *u)
	f.mutations++
	return nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) FindFirstAdmin(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Role == models.RoleAdmin {
			out := u
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) CreateCustomer(ctx context.Context, c *models.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = f.id("cust")
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	f.customers = append(f.customers, *c)
	f.mutations++
	return nil
}

func (f *fakeStore) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.customers {
		if f.customers[i].ID == c.ID {
			c.UpdatedAt = time.Now().UTC()
			f.customers[i] = *c
			f.mutations++
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeStore) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.customers {
		if c.Email != nil && *c.Email == email {
			out := c
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) GetCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.customers {
		if c.Phone != nil && *c.Phone == phone {
			out := c
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) GetCustomerByExternalID(ctx context.Context, externalID string) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.customers {
		if c.ExternalID != nil && *c.ExternalID == externalID {
			out := c
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) GetSyncCursor(ctx context.Context, sheetID, sheetName string) (*models.SheetSyncCursor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.cursors[sheetID+"/"+sheetName]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := cur
	return &out, nil
}

func (f *fakeStore) UpsertSyncCursor(ctx context.Context, sheetID, sheetName string, rowCount int, syncedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := sheetID + "/" + sheetName
	cur, ok := f.cursors[key]
	if !ok {
		cur = models.SheetSyncCursor{ID: f.id("cursor"), SheetID: sheetID, SheetName: sheetName}
	}
	if rowCount > cur.LastRowCount {
		cur.LastRowCount = rowCount
	}
	cur.LastSyncedAt = syncedAt
	f.cursors[key] = cur
	f.mutations++
	return nil
}

func (f *fakeStore) CreateVoiceCall(ctx context.Context, v *models.VoiceCall) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v.ID = f.id("call")
	v.CreatedAt = time.Now().UTC()
	v.UpdatedAt = v.CreatedAt
	f.calls = append(f.calls, *v)
	f.mutations++
	return nil
}

func (f *fakeStore) GetVoiceCallByCallID(ctx context.Context, callID string) (*models.VoiceCall, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.calls {
		if v.CallID == callID {
			out := v
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) FinishVoiceCall(ctx context.Context, id, status string, duration int, recordingURL string, endTime time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.calls {
		if f.calls[i].ID == id {
			f.calls[i].Status = status
			f.calls[i].Duration = &duration
			f.calls[i].RecordingURL = &recordingURL
			f.calls[i].EndTime = &endTime
			f.calls[i].UpdatedAt = time.Now().UTC()
			f.mutations++
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeStore) SetVoiceCallTranscript(ctx context.Context, id, transcriptURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.calls {
		if f.calls[i].ID == id {
			f.calls[i].TranscriptURL = &transcriptURL
			f.calls[i].UpdatedAt = time.Now().UTC()
			f.mutations++
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeStore) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = f.id("appt")
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	f.appointments = append(f.appointments, *a)
	f.mutations++
	return nil
}
