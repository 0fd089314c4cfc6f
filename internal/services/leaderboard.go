package services

import (
	"math"
	"sort"

	"github.com/HerbSek/QuizMe/internal/models"

	"gorm.io/gorm"
)

type LeaderboardService struct {
	db *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

type LeaderboardEntry struct {
	PlayerID       uint     `json:"player_id"`
	Username       string   `json:"username"`
	Score          int      `json:"score"`
	CorrectAnswers int      `json:"correct_answers"`
	TotalAnswers   int      `json:"total_answers"`
	AverageTime    *float64 `json:"average_time,omitempty"`
}

type Leaderboard struct {
	SessionID uint               `json:"session_id"`
	Entries   []LeaderboardEntry `json:"entries"`
}

// GetLeaderboard ranks every active participant of the session, including
// those who have not answered anything yet (score 0). Score is the count of
// correct answers; ties break on average answer time, faster first, with
// players lacking any timed answer sorting last.
func (s *LeaderboardService) GetLeaderboard(sessionID uint) (*Leaderboard, error) {
	var session models.GameSession
	if err := s.db.First(&session, sessionID).Error; err != nil {
		return nil, ErrSessionNotFound
	}

	type playerStats struct {
		entry     LeaderboardEntry
		timeSum   int
		timeCount int
	}
	stats := make(map[uint]*playerStats)

	var roster []ParticipantInfo
	err := s.db.Model(&models.SessionParticipant{}).
		Select("session_participants.user_id, users.username, session_participants.joined_at").
		Joins("JOIN users ON users.id = session_participants.user_id").
		Where("session_participants.session_id = ? AND session_participants.is_active = ?", sessionID, true).
		Scan(&roster).Error
	if err != nil {
		return nil, err
	}
	for _, p := range roster {
		stats[p.UserID] = &playerStats{
			entry: LeaderboardEntry{PlayerID: p.UserID, Username: p.Username},
		}
	}

	var answers []models.PlayerAnswer
	if err := s.db.Where("session_id = ?", sessionID).Find(&answers).Error; err != nil {
		return nil, err
	}

	for _, a := range answers {
		ps, ok := stats[a.PlayerID]
		if !ok {
			// Answers can outlive a soft-removed roster row; keep the
			// player ranked and resolve the username below.
			ps = &playerStats{entry: LeaderboardEntry{PlayerID: a.PlayerID}}
			stats[a.PlayerID] = ps
		}
		ps.entry.TotalAnswers++
		if a.IsCorrect {
			ps.entry.CorrectAnswers++
		}
		if a.AnswerTime != nil {
			ps.timeSum += *a.AnswerTime
			ps.timeCount++
		}
	}

	var missing []uint
	for id, ps := range stats {
		if ps.entry.Username == "" {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		var users []models.User
		if err := s.db.Where("id IN ?", missing).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			stats[u.ID].entry.Username = u.Username
		}
	}

	entries := make([]LeaderboardEntry, 0, len(stats))
	avgByPlayer := make(map[uint]float64, len(stats))
	for id, ps := range stats {
		ps.entry.Score = ps.entry.CorrectAnswers
		avg := math.Inf(1)
		if ps.timeCount > 0 {
			avg = float64(ps.timeSum) / float64(ps.timeCount)
			ps.entry.AverageTime = &avg
		}
		avgByPlayer[id] = avg
		entries = append(entries, ps.entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		ai, aj := avgByPlayer[entries[i].PlayerID], avgByPlayer[entries[j].PlayerID]
		if ai != aj {
			return ai < aj
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})

	return &Leaderboard{SessionID: sessionID, Entries: entries}, nil
}
