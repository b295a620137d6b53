package service

import (
	"context"
	"testing"

	"cems/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectInterests(t *testing.T) {
	interests := detectInterests("I love coding and going to hackathons")

	// "coding" scores 1 substring + 2 word-boundary points;
	// "hackathon" appears only as a substring of "hackathons".
	assert.Equal(t, 40, interests["technology"])
	assert.NotContains(t, interests, "sports")
}

func TestDetectInterests_ScoreCap(t *testing.T) {
	interests := detectInterests("music singing song concert band guitar piano violin vocal melody")

	assert.Equal(t, 100, interests["music"])
}

func TestDetectInterests_NoMatch(t *testing.T) {
	interests := detectInterests("nothing relevant here")

	assert.Empty(t, interests)
}

func TestInterestService_Analyze_PersistsProfile(t *testing.T) {
	gdb := newTestDB(t)
	events := NewEventService(gdb)
	svc := NewInterestService(gdb, events)
	student := createTestUser(t, gdb, "john@student.edu", domain.RoleStudent)

	detected, analysis, err := svc.Analyze(context.Background(), student.ID, "I enjoy basketball and fitness workouts")
	require.NoError(t, err)
	assert.Contains(t, detected, "sports")
	assert.Contains(t, analysis, "Sports & Fitness")

	var profiles []domain.InterestProfile
	require.NoError(t, gdb.Where("user_id = ?", student.ID).Find(&profiles).Error)
	require.Len(t, profiles, 1)
	assert.Equal(t, "sports", profiles[0].Category)
}

func TestInterestService_Analyze_KeepsHigherScore(t *testing.T) {
	gdb := newTestDB(t)
	events := NewEventService(gdb)
	svc := NewInterestService(gdb, events)
	student := createTestUser(t, gdb, "john@student.edu", domain.RoleStudent)

	first, _, err := svc.Analyze(context.Background(), student.ID, "basketball football tennis fitness")
	require.NoError(t, err)
	second, _, err := svc.Analyze(context.Background(), student.ID, "basketball")
	require.NoError(t, err)
	require.Greater(t, first["sports"], second["sports"])

	var profile domain.InterestProfile
	require.NoError(t, gdb.Where("user_id = ? AND category = ?", student.ID, "sports").First(&profile).Error)
	assert.Equal(t, first["sports"], profile.Score)
}

func TestInterestService_Analyze_EmptyText(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewInterestService(gdb, NewEventService(gdb))
	student := createTestUser(t, gdb, "john@student.edu", domain.RoleStudent)

	_, _, err := svc.Analyze(context.Background(), student.ID, "   ")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestInterestService_Recommend_EmptyWithoutProfile(t *testing.T) {
	gdb := newTestDB(t)
	events := NewEventService(gdb)
	svc := NewInterestService(gdb, events)
	organizer := createTestUser(t, gdb, "sarah@club.edu", domain.RoleOrganizer)
	student := createTestUser(t, gdb, "john@student.edu", domain.RoleStudent)
	createTestEvent(t, gdb, organizer.ID, domain.EventStatusApproved, 100)

	recommended, err := svc.Recommend(context.Background(), student.ID)

	require.NoError(t, err)
	assert.Empty(t, recommended)
}

func TestInterestService_Recommend_MatchesCategory(t *testing.T) {
	gdb := newTestDB(t)
	events := NewEventService(gdb)
	svc := NewInterestService(gdb, events)
	organizer := createTestUser(t, gdb, "sarah@club.edu", domain.RoleOrganizer)
	student := createTestUser(t, gdb, "john@student.edu", domain.RoleStudent)

	// Approved technology event, pending one stays invisible
	tech := createTestEvent(t, gdb, organizer.ID, domain.EventStatusApproved, 100)
	createTestEvent(t, gdb, organizer.ID, domain.EventStatusPending, 100)

	_, _, err := svc.Analyze(context.Background(), student.ID, "I love coding and programming hackathons")
	require.NoError(t, err)

	recommended, err := svc.Recommend(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, recommended, 1)
	assert.Equal(t, tech.ID, recommended[0].ID)
	assert.GreaterOrEqual(t, recommended[0].MatchScore, 30)
	assert.LessOrEqual(t, recommended[0].MatchScore, 100)
}
