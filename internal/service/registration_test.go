package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"cems/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationService_Register_Success(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewRegistrationService(gdb)
	organizer := createTestUser(t, gdb, "sarah@club.edu", domain.RoleOrganizer)
	student := createTestUser(t, gdb, "john@student.edu", domain.RoleStudent)
	event := createTestEvent(t, gdb, organizer.ID, domain.EventStatusApproved, 10)

	reg, err := svc.Register(context.Background(), event.ID, student.ID)

	require.NoError(t, err)
	assert.NotZero(t, reg.ID)
	assert.Equal(t, domain.RegistrationStatusRegistered, reg.Status)

	count, err := svc.Count(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRegistrationService_Register_EventNotFound(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewRegistrationService(gdb)
	student := createTestUser(t, gdb, "john@student.edu", domain.RoleStudent)

	_, err := svc.Register(context.Background(), 9999, student.ID)

	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestRegistrationService_Register_NotApproved(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewRegistrationService(gdb)
	organizer := createTestUser(t, gdb, "sarah@club.edu", domain.RoleOrganizer)
	student := createTestUser(t, gdb, "john@student.edu", domain.RoleStudent)

	for _, status := range []string{
		domain.EventStatusPending,
		domain.EventStatusRejected,
		domain.EventStatusCancelled,
	} {
		t.Run(status, func(t *testing.T) {
			event := createTestEvent(t, gdb, organizer.ID, status, 10)
			_, err := svc.Register(context.Background(), event.ID, student.ID)
			assert.ErrorIs(t, err, domain.ErrEventNotApproved)
		})
	}
}

func TestRegistrationService_Register_Duplicate(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewRegistrationService(gdb)
	organizer := createTestUser(t, gdb, "sarah@club.edu", domain.RoleOrganizer)
	student := createTestUser(t, gdb, "john@student.edu", domain.RoleStudent)
	event := createTestEvent(t, gdb, organizer.ID, domain.EventStatusApproved, 10)

	_, err := svc.Register(context.Background(), event.ID, student.ID)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), event.ID, student.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)

	// Exactly one active registration remains
	count, err := svc.Count(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRegistrationService_Register_Full(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewRegistrationService(gdb)
	organizer := createTestUser(t, gdb, "sarah@club.edu", domain.RoleOrganizer)
	event := createTestEvent(t, gdb, organizer.ID, domain.EventStatusApproved, 2)

	for _, email := range []string{"a@student.edu", "b@student.edu"} {
		student := createTestUser(t, gdb, email, domain.RoleStudent)
		_, err := svc.Register(context.Background(), event.ID, student.ID)
		require.NoError(t, err)
	}

	late := createTestUser(t, gdb, "late@student.edu", domain.RoleStudent)
	_, err := svc.Register(context.Background(), event.ID, late.ID)
	assert.ErrorIs(t, err, domain.ErrEventFull)
}

func TestRegistrationService_Register_CapacityOne_TwoConcurrent(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewRegistrationService(gdb)
	organizer := createTestUser(t, gdb, "sarah@club.edu", domain.RoleOrganizer)
	event := createTestEvent(t, gdb, organizer.ID, domain.EventStatusApproved, 1)

	first := createTestUser(t, gdb, "first@student.edu", domain.RoleStudent)
	second := createTestUser(t, gdb, "second@student.edu", domain.RoleStudent)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, user := range []*domain.User{first, second} {
		wg.Add(1)
		go func(i int, userID uint) {
			defer wg.Done()
			_, errs[i] = svc.Register(context.Background(), event.ID, userID)
		}(i, user.ID)
	}
	wg.Wait()

	var successes, full int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrEventFull):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, full)
}

// The overbooking property: after any number of concurrent register
// calls, registeredCount never exceeds capacity.
func TestRegistrationService_Register_NoOverbooking(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewRegistrationService(gdb)
	organizer := createTestUser(t, gdb, "sarah@club.edu", domain.RoleOrganizer)

	capacity := 5
	attempts := 50
	event := createTestEvent(t, gdb, organizer.ID, domain.EventStatusApproved, capacity)

	users := make([]*domain.User, attempts)
	for i := range users {
		users[i] = createTestUser(t, gdb, fmt.Sprintf("gopher%d@student.edu", i), domain.RoleStudent)
	}

	var successes, full, unexpected int32
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(userID uint) {
			defer wg.Done()
			_, err := svc.Register(context.Background(), event.ID, userID)
			switch {
			case err == nil:
				atomic.AddInt32(&successes, 1)
			case errors.Is(err, domain.ErrEventFull):
				atomic.AddInt32(&full, 1)
			default:
				t.Logf("unexpected error: %v", err)
				atomic.AddInt32(&unexpected, 1)
			}
		}(users[i].ID)
	}
	wg.Wait()

	assert.Equal(t, int32(capacity), successes)
	assert.Equal(t, int32(attempts-capacity), full)
	assert.Zero(t, unexpected)

	// Double check the rows directly
	count, err := svc.Count(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(capacity), count)
}

func TestRegistrationService_IsRegistered(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewRegistrationService(gdb)
	organizer := createTestUser(t, gdb, "sarah@club.edu", domain.RoleOrganizer)
	student := createTestUser(t, gdb, "john@student.edu", domain.RoleStudent)
	event := createTestEvent(t, gdb, organizer.ID, domain.EventStatusApproved, 10)

	ok, err := svc.IsRegistered(context.Background(), event.ID, student.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Register(context.Background(), event.ID, student.ID)
	require.NoError(t, err)

	ok, err = svc.IsRegistered(context.Background(), event.ID, student.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}
