package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"cems/internal/domain"

	"gorm.io/gorm"
)

// interestKeywords maps each event category to the keywords that
// signal interest in it. Deterministic keyword matching, no ML.
var interestKeywords = map[string][]string{
	"dance":      {"dance", "dancing", "choreography", "ballet", "hiphop", "salsa", "performance", "movement"},
	"music":      {"music", "singing", "song", "concert", "band", "guitar", "piano", "violin", "vocal", "melody"},
	"sports":     {"sports", "basketball", "football", "soccer", "tennis", "cricket", "volleyball", "fitness", "exercise", "workout"},
	"technology": {"technology", "coding", "programming", "software", "ai", "machine learning", "web development", "hackathon", "tech"},
	"art":        {"art", "painting", "drawing", "sketching", "design", "creative", "exhibition", "gallery", "craft"},
	"academic":   {"academic", "workshop", "seminar", "lecture", "study", "research", "conference", "education"},
	"social":     {"social", "networking", "meetup", "party", "gathering", "community", "cultural"},
}

var interestNames = map[string]string{
	"dance":      "Dance & Performing Arts",
	"music":      "Music & Singing",
	"sports":     "Sports & Fitness",
	"technology": "Technology & Coding",
	"art":        "Art & Design",
	"academic":   "Academic & Workshops",
	"social":     "Social & Cultural",
}

// wordPatterns holds a compiled word-boundary pattern per keyword.
var wordPatterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp)
	for _, keywords := range interestKeywords {
		for _, kw := range keywords {
			m[kw] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
		}
	}
	return m
}()

// InterestService detects interest categories from free text and keeps
// a per-user profile that drives event recommendations. Profiles are
// stored server-side rather than in browser-local state.
type InterestService struct {
	db     *gorm.DB
	events *EventService
}

func NewInterestService(db *gorm.DB, events *EventService) *InterestService {
	return &InterestService{db: db, events: events}
}

// detectInterests scores the text against the keyword table: one point
// per substring hit, two more when the keyword matches on a word
// boundary, scaled by ten and capped at 100.
func detectInterests(text string) map[string]int {
	interests := make(map[string]int)
	textLower := strings.ToLower(text)
	for category, keywords := range interestKeywords {
		score := 0
		for _, kw := range keywords {
			if strings.Contains(textLower, kw) {
				score++
				if wordPatterns[kw].MatchString(textLower) {
					score += 2
				}
			}
		}
		if score > 0 {
			interests[category] = min(score*10, 100)
		}
	}
	return interests
}

// Analyze detects interests in the text, merges them into the user's
// stored profile keeping the higher score per category, and returns
// the detected scores with a human-readable summary.
func (s *InterestService) Analyze(ctx context.Context, userID uint, text string) (map[string]int, string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, "", fmt.Errorf("%w: text is required", domain.ErrValidation)
	}

	interests := detectInterests(text)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for category, score := range interests {
			var profile domain.InterestProfile
			err := tx.Where("user_id = ? AND category = ?", userID, category).First(&profile).Error
			switch {
			case err == nil:
				if score > profile.Score {
					if err := tx.Model(&profile).Update("score", score).Error; err != nil {
						return err
					}
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				profile = domain.InterestProfile{UserID: userID, Category: category, Score: score}
				if err := tx.Create(&profile).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("save interest profile: %w", err)
	}

	return interests, summarize(interests), nil
}

// summarize builds the analysis sentence from the top three detected
// categories.
func summarize(interests map[string]int) string {
	type entry struct {
		category string
		score    int
	}
	entries := make([]entry, 0, len(interests))
	for c, s := range interests {
		entries = append(entries, entry{c, s})
	}
	if len(entries) == 0 {
		return "No strong interests detected. Try describing more specific activities you enjoy!"
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].category < entries[j].category
	})
	if len(entries) > 3 {
		entries = entries[:3]
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		name, ok := interestNames[e.category]
		if !ok {
			name = e.category
		}
		names[i] = name
	}
	return "Based on your input, you're most interested in " + strings.Join(names, ", ") + "."
}

// minRecommendScore is the cutoff below which an event is not worth
// recommending.
const minRecommendScore = 30

// Recommend scores approved events against the user's interest profile
// and returns matches above the cutoff, best first. A user with no
// profile on file gets an empty result.
func (s *InterestService) Recommend(ctx context.Context, userID uint) ([]domain.RecommendedEvent, error) {
	var profiles []domain.InterestProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("load interest profile: %w", err)
	}
	if len(profiles) == 0 {
		return []domain.RecommendedEvent{}, nil
	}

	scores := make(map[string]int, len(profiles))
	for _, p := range profiles {
		scores[p.Category] = p.Score
	}

	events, err := s.events.List(ctx, domain.EventStatusApproved, "")
	if err != nil {
		return nil, err
	}

	recommended := []domain.RecommendedEvent{}
	for _, event := range events {
		match := 0.0
		if score, ok := scores[event.Category]; ok {
			match += float64(score)
		}
		eventText := strings.ToLower(event.Title + " " + event.Description)
		for category, score := range scores {
			for _, kw := range interestKeywords[category] {
				if strings.Contains(eventText, kw) {
					match += float64(score) * 0.1
				}
			}
		}
		matchScore := min(int(match+0.5), 100)
		if matchScore >= minRecommendScore {
			recommended = append(recommended, domain.RecommendedEvent{
				EventSummary: event,
				MatchScore:   matchScore,
			})
		}
	}

	sort.SliceStable(recommended, func(i, j int) bool {
		return recommended[i].MatchScore > recommended[j].MatchScore
	})
	return recommended, nil
}
