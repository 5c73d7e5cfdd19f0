package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/flatauth/internal/common"
	"github.com/dmitrijs2005/flatauth/internal/logging"
	"github.com/dmitrijs2005/flatauth/internal/server/models"
	"github.com/dmitrijs2005/flatauth/internal/server/repositories/users"
)

var fixedNow = time.Date(2024, 1, 1, 12, 30, 45, 123456789, time.UTC)

func fixedClock() time.Time { return fixedNow }

// stubStore returns canned errors and records SaveAll calls.
type stubStore struct {
	loadErr error
	saveErr error
	saves   int
}

func (s *stubStore) LoadAll(ctx context.Context) ([]models.User, error) {
	return []models.User{}, s.loadErr
}

func (s *stubStore) SaveAll(ctx context.Context, list []models.User) error {
	s.saves++
	return s.saveErr
}

func newService(t *testing.T, store users.Store, opts ...Option) *UserService {
	t.Helper()
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	return NewUserService(store, logging.Nop(), opts...)
}

func loadAll(t *testing.T, store users.Store) []models.User {
	t.Helper()
	list, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	return list
}

func TestSignup_EmptyStore(t *testing.T) {
	store := users.NewMemoryStore()
	svc := newService(t, store)

	u, err := svc.Signup(context.Background(), "a@b.com", "p")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", u.Email)
	assert.Equal(t, "p", u.Password)
	assert.Equal(t, "2024-01-01T12:30:45.123Z", u.Timestamp)

	assert.Equal(t, []models.User{*u}, loadAll(t, store))
}

func TestSignup_Duplicate(t *testing.T) {
	ctx := context.Background()
	store := users.NewMemoryStore()
	svc := newService(t, store)

	_, err := svc.Signup(ctx, "a@b.com", "p")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "a@b.com", "other")
	require.ErrorIs(t, err, common.ErrEmailConflict)

	list := loadAll(t, store)
	require.Len(t, list, 1)
	assert.Equal(t, "p", list[0].Password)
}

func TestSignup_EmailIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	store := users.NewMemoryStore()
	svc := newService(t, store)

	_, err := svc.Signup(ctx, "a@b.com", "p")
	require.NoError(t, err)
	_, err = svc.Signup(ctx, "A@B.com", "p")
	require.NoError(t, err)

	assert.Len(t, loadAll(t, store), 2)
}

func TestSignup_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	store := users.NewMemoryStore()
	svc := newService(t, store)

	for _, email := range []string{"c@x.com", "a@x.com", "b@x.com"} {
		_, err := svc.Signup(ctx, email, "p")
		require.NoError(t, err)
	}

	var got []string
	for _, u := range loadAll(t, store) {
		got = append(got, u.Email)
	}
	assert.Equal(t, []string{"c@x.com", "a@x.com", "b@x.com"}, got)
}

func TestSignup_MissingFields(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"missing password", "a@b.com", ""},
		{"missing email", "", "p"},
		{"both missing", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubStore{}
			svc := newService(t, store)

			_, err := svc.Signup(context.Background(), tt.email, tt.password)
			require.ErrorIs(t, err, common.ErrMissingField)
			assert.Zero(t, store.saves, "store must be untouched")
		})
	}
}

func TestSignup_SaveError(t *testing.T) {
	store := &stubStore{saveErr: fmt.Errorf("%w: disk full", common.ErrStorageWrite)}
	svc := newService(t, store)

	_, err := svc.Signup(context.Background(), "a@b.com", "p")
	require.ErrorIs(t, err, common.ErrStorageWrite)
	assert.Equal(t, 1, store.saves)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	store := users.NewMemoryStore(models.User{Email: "a@b.com", Password: "p", Timestamp: "2024-01-01T00:00:00.000Z"})
	svc := newService(t, store)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"success", "a@b.com", "p", nil},
		{"wrong password", "a@b.com", "q", common.ErrPasswordMismatch},
		{"password differs in case", "a@b.com", "P", common.ErrPasswordMismatch},
		{"unknown email", "x@y.com", "p", common.ErrUserNotFound},
		{"missing password", "a@b.com", "", common.ErrMissingField},
		{"missing email", "", "p", common.ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := svc.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a@b.com", u.Email)
		})
	}
}

func TestLogin_EmptyStore(t *testing.T) {
	svc := newService(t, users.NewMemoryStore())

	_, err := svc.Login(context.Background(), "a@b.com", "p")
	require.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestSignupThenLogin_FileStore(t *testing.T) {
	ctx := context.Background()
	store := users.NewFileStore(filepath.Join(t.TempDir(), "users.json"))
	svc := newService(t, store)

	_, err := svc.Signup(ctx, "a@b.com", "p")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@b.com", "p")
	require.NoError(t, err)
}

func writeCorruptStore(t *testing.T) *users.FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o644))
	return users.NewFileStore(path)
}

func TestCorruptStore_FailOpen(t *testing.T) {
	ctx := context.Background()
	store := writeCorruptStore(t)

	var buf bytes.Buffer
	svc := NewUserService(store, logging.New(&buf, "debug", "text"), WithClock(fixedClock))

	_, err := svc.Login(ctx, "a@b.com", "p")
	require.ErrorIs(t, err, common.ErrUserNotFound)

	_, err = svc.Signup(ctx, "a@b.com", "p")
	require.NoError(t, err)

	list := loadAll(t, store)
	require.Len(t, list, 1, "corrupt content is replaced by the new collection")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "user store unreadable")
}

func TestCorruptStore_Strict(t *testing.T) {
	ctx := context.Background()
	store := writeCorruptStore(t)
	svc := newService(t, store, WithFailOpen(false))

	_, err := svc.Signup(ctx, "a@b.com", "p")
	require.ErrorIs(t, err, common.ErrCorruptStore)

	_, err = svc.Login(ctx, "a@b.com", "p")
	require.ErrorIs(t, err, common.ErrCorruptStore)

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "{oops", string(raw), "strict mode never overwrites")
}

func TestReadError_Policy(t *testing.T) {
	readErr := fmt.Errorf("%w: permission denied", common.ErrStorageRead)

	store := &stubStore{loadErr: readErr}
	_, err := newService(t, store).Signup(context.Background(), "a@b.com", "p")
	require.NoError(t, err)
	assert.Equal(t, 1, store.saves)

	store = &stubStore{loadErr: readErr}
	_, err = newService(t, store, WithFailOpen(false)).Signup(context.Background(), "a@b.com", "p")
	require.ErrorIs(t, err, common.ErrStorageRead)
	assert.Zero(t, store.saves)
}

func TestLoadError_UnclassifiedAlwaysPropagates(t *testing.T) {
	store := &stubStore{loadErr: errors.New("boom")}

	_, err := newService(t, store).Login(context.Background(), "a@b.com", "p")
	require.EqualError(t, err, "boom")
}

func TestSignup_ConcurrentDistinctEmails(t *testing.T) {
	store := users.NewMemoryStore()
	svc := newService(t, store)

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Signup(context.Background(), fmt.Sprintf("u%d@x.com", i), "p")
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Len(t, loadAll(t, store), n, "no signup may be lost")
}

func TestSignup_LogsEmail(t *testing.T) {
	var buf bytes.Buffer
	svc := NewUserService(users.NewMemoryStore(), logging.New(&buf, "info", "text"), WithClock(fixedClock))

	_, err := svc.Signup(context.Background(), "a@b.com", "p")
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), "a@b.com", "p")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `msg="user signed up"`)
	assert.Contains(t, out, `msg="user logged in"`)
	assert.Contains(t, out, "email=a@b.com")
	assert.NotContains(t, out, "password", "passwords are never logged")
}
