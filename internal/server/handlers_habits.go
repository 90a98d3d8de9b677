package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/healthmate/healthmate/internal/domain"
)

type habitLogRequest struct {
	Date       string                `json:"date"`
	Nutrition  *domain.NutritionLog  `json:"nutrition"`
	Sleep      *domain.SleepLog      `json:"sleep"`
	Exercise   *domain.ExerciseLog   `json:"exercise"`
	Medication *domain.MedicationLog `json:"medication"`
	Mood       *domain.MoodLog       `json:"mood"`
}

func (r *habitLogRequest) toDomain(userID uint) *domain.HabitLog {
	return &domain.HabitLog{
		UserID:     userID,
		Date:       r.Date,
		Nutrition:  r.Nutrition,
		Sleep:      r.Sleep,
		Exercise:   r.Exercise,
		Medication: r.Medication,
		Mood:       r.Mood,
	}
}

func (s *Server) handleCreateHabitLog(c *gin.Context) {
	userID, _ := authedUserID(c)

	var req habitLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit log payload"})
		return
	}

	log := req.toDomain(userID)
	if err := s.habits.CreateLog(c.Request.Context(), log); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// handleListHabitLogs returns the user's logs. Users may only read their own
// data.
func (s *Server) handleListHabitLogs(c *gin.Context) {
	userID, ok := s.pathUserMatchesToken(c)
	if !ok {
		return
	}

	logs, err := s.habits.ListLogs(c.Request.Context(), userID, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (s *Server) handleHabitSummary(c *gin.Context) {
	userID, ok := s.pathUserMatchesToken(c)
	if !ok {
		return
	}

	summary, err := s.habits.Summarize(c.Request.Context(), userID, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// handleAnalyzeHabits scores a submitted day and returns a one-line insight.
// Provider failures degrade to a locally generated message, never an error.
func (s *Server) handleAnalyzeHabits(c *gin.Context) {
	userID, _ := authedUserID(c)

	var req struct {
		HabitLog habitLogRequest `json:"habitLog"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "habitLog is required"})
		return
	}

	insight := s.habits.AnalyzeLog(c.Request.Context(), req.HabitLog.toDomain(userID))
	c.JSON(http.StatusOK, insight)
}

func (s *Server) pathUserMatchesToken(c *gin.Context) (uint, bool) {
	tokenUserID, _ := authedUserID(c)

	pathID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	if uint(pathID) != tokenUserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return 0, false
	}
	return tokenUserID, true
}
