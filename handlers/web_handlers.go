// --- aira-server/handlers/web_handlers.go ---
package handlers

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aira-server/db"
	"aira-server/exam"
	"aira-server/utils"
)

// ExamPage draws an exam for the topic and renders it as a form. The
// drawn set is bound to the session; the form never carries correct
// answers.
// GET /exams/:topic_id
func ExamPage(engine *exam.Engine, topics *db.TopicStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		topicID, err := strconv.Atoi(c.Param("topic_id"))
		if err != nil {
			c.HTML(http.StatusBadRequest, "error_page", gin.H{"Message": "Invalid topic ID"})
			return
		}
		sessionKey := c.GetString("user_email")

		inst, err := engine.DrawExam(context.Background(), sessionKey, topicID)
		if errors.Is(err, exam.ErrTopicNotFound) {
			c.HTML(http.StatusNotFound, "error_page", gin.H{"Message": "No questions found for this topic"})
			return
		}
		if err != nil {
			log.Printf("Error drawing exam for topic %d: %v", topicID, err)
			c.HTML(http.StatusServiceUnavailable, "error_page", gin.H{"Message": "Failed to load exam questions"})
			return
		}

		name, err := topics.TopicName(context.Background(), topicID)
		if err != nil {
			log.Printf("Error resolving topic name %d: %v", topicID, err)
		}
		c.HTML(http.StatusOK, "exam_form", gin.H{
			"Title":     name,
			"TopicID":   topicID,
			"TopicName": name,
			"Questions": inst.Questions,
			"UserEmail": c.GetString("user_email"),
		})
	}
}

// SubmitExamForm grades a browser form submission (q0..qN or
// q0Answer..qNAnswer fields) and renders the result with remediation
// suggestions.
// POST /submit-exam
func SubmitExamForm(engine *exam.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			c.HTML(http.StatusBadRequest, "error_page", gin.H{"Message": "Invalid form submission"})
			return
		}
		sessionKey := c.GetString("user_email")
		userID := c.GetInt("user_id")

		a, err := engine.Submit(context.Background(), sessionKey, userID, utils.FormAnswers(c.Request.PostForm))
		if errors.Is(err, exam.ErrNoActiveExam) {
			c.HTML(http.StatusBadRequest, "error_page", gin.H{"Message": "No exam in progress; start an exam first"})
			return
		}
		if err != nil {
			log.Printf("Error recording assessment for user %d: %v", userID, err)
			c.HTML(http.StatusServiceUnavailable, "error_page", gin.H{"Message": "Failed to save your result, please submit again"})
			return
		}

		weak, err := engine.Analyze(context.Background(), userID)
		suggestionsUnavailable := err != nil
		if err != nil {
			log.Printf("Error analyzing assessments for user %d: %v", userID, err)
			weak = nil
		}
		c.HTML(http.StatusOK, "exam_result", gin.H{
			"Title":                  "Result",
			"Score":                  a.Score,
			"TotalQuestions":         a.TotalQuestions,
			"ScorePercent":           int(math.Round(float64(a.Score) / float64(a.TotalQuestions) * 100)),
			"WeakAreas":              weak,
			"SuggestionsUnavailable": suggestionsUnavailable,
			"UserEmail":              c.GetString("user_email"),
		})
	}
}

// HistoryPage renders the caller's past assessments.
// GET /assessment
func HistoryPage(assessments *db.AssessmentStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt("user_id")
		history, err := assessments.ListByUser(context.Background(), userID)
		if err != nil {
			log.Printf("Error querying history for user %d: %v", userID, err)
			c.HTML(http.StatusInternalServerError, "error_page", gin.H{"Message": "Failed to retrieve assessments"})
			return
		}
		c.HTML(http.StatusOK, "assessment_history", gin.H{
			"Title":       "Assessment history",
			"Assessments": history,
			"UserEmail":   c.GetString("user_email"),
		})
	}
}

// SuggestionsPage renders the caller's weak areas. A storage failure
// shows the degraded "suggestions unavailable" state instead of an error
// page.
// GET /analyze-assessment
func SuggestionsPage(engine *exam.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt("user_id")
		weak, err := engine.Analyze(context.Background(), userID)
		suggestionsUnavailable := err != nil
		if err != nil {
			log.Printf("Error analyzing assessments for user %d: %v", userID, err)
			weak = nil
		}
		c.HTML(http.StatusOK, "suggestions", gin.H{
			"Title":                  "Study suggestions",
			"WeakAreas":              weak,
			"SuggestionsUnavailable": suggestionsUnavailable,
			"UserEmail":              c.GetString("user_email"),
		})
	}
}
