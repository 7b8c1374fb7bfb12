// --- aira-server/handlers/api_handlers.go ---
package handlers

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"aira-server/db"
	"aira-server/exam"
	"aira-server/middleware"
	"aira-server/models"
	"aira-server/utils"
)

// Register creates a student account.
// POST /register
func Register(users *db.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Error hashing password for %s: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}

		user, err := users.Create(context.Background(), models.User{
			FirstName:    req.FirstName,
			Surname:      req.Surname,
			Email:        req.Email,
			PasswordHash: string(hash),
		})
		if err != nil {
			log.Printf("Error inserting user %s: %v", req.Email, err)
			c.JSON(http.StatusConflict, gin.H{"error": "Failed to register user"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": user.ID, "email": user.Email})
	}
}

// Login verifies credentials and issues a bearer token.
// POST /login
func Login(users *db.UserStore, jwtSigningKey, issuer string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := users.GetByEmail(context.Background(), req.Email)
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email not found"})
			return
		}
		if err != nil {
			log.Printf("Error looking up user %s: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password"})
			return
		}

		expiresAt := time.Now().Add(tokenTTL)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &middleware.Claims{
			UserID: user.ID,
			Email:  user.Email,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				ExpiresAt: jwt.NewNumericDate(expiresAt),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
			},
		})
		signed, err := token.SignedString([]byte(jwtSigningKey))
		if err != nil {
			log.Printf("Error signing token for %s: %v", user.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		c.JSON(http.StatusOK, models.LoginResponse{Token: signed, ExpiresAt: expiresAt})
	}
}

// ListTopics returns the topic catalog.
// GET /api/v1/topics
func ListTopics(topics *db.TopicStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := topics.ListTopics(context.Background())
		if err != nil {
			log.Printf("Error querying topics: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve topics"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// DrawExam draws a fresh randomized question set for the topic and binds
// it to the caller's session, replacing any prior uncompleted draw.
// POST /api/v1/topics/:topic_id/exam
func DrawExam(engine *exam.Engine, topics *db.TopicStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		topicID, err := strconv.Atoi(c.Param("topic_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid topic ID"})
			return
		}
		sessionKey := c.GetString("user_email")

		inst, err := engine.DrawExam(context.Background(), sessionKey, topicID)
		if errors.Is(err, exam.ErrTopicNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No questions found for this topic"})
			return
		}
		if err != nil {
			log.Printf("Error drawing exam for topic %d: %v", topicID, err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load exam questions"})
			return
		}

		name, err := topics.TopicName(context.Background(), topicID)
		if err != nil {
			log.Printf("Error resolving topic name %d: %v", topicID, err)
		}
		c.JSON(http.StatusOK, models.ExamResponse{
			TopicID:   inst.TopicID,
			TopicName: name,
			DrawnAt:   inst.DrawnAt,
			Questions: inst.Questions,
		})
	}
}

// SubmitExam grades the session's bound exam and records the assessment.
// POST /api/v1/exam/submit
func SubmitExam(engine *exam.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sessionKey := c.GetString("user_email")
		userID := c.GetInt("user_id")

		a, err := engine.Submit(context.Background(), sessionKey, userID, utils.AnswersFromJSON(req.Answers))
		if errors.Is(err, exam.ErrNoActiveExam) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No exam in progress; draw an exam first"})
			return
		}
		if err != nil {
			// The drawn exam stays bound to the session, so the client can
			// resubmit the same answers once storage recovers.
			log.Printf("Error recording assessment for user %d: %v", userID, err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to save assessment, please retry"})
			return
		}
		c.JSON(http.StatusOK, models.SubmitResponse{
			TopicID:        a.TopicID,
			Score:          a.Score,
			TotalQuestions: a.TotalQuestions,
			ScorePercent:   int(math.Round(float64(a.Score) / float64(a.TotalQuestions) * 100)),
			CreatedAt:      a.CreatedAt,
		})
	}
}

// GetHistory lists the caller's past assessments, newest first.
// GET /api/v1/assessments
func GetHistory(assessments *db.AssessmentStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt("user_id")
		history, err := assessments.ListByUser(context.Background(), userID)
		if err != nil {
			log.Printf("Error querying history for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve assessments"})
			return
		}
		if history == nil {
			history = []models.Assessment{}
		}
		c.JSON(http.StatusOK, history)
	}
}

// GetSuggestions returns the caller's weak areas. A storage failure
// degrades to an empty list with the unavailable flag set rather than
// failing the request.
// GET /api/v1/assessments/suggestions
func GetSuggestions(engine *exam.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt("user_id")
		weak, err := engine.Analyze(context.Background(), userID)
		if err != nil {
			log.Printf("Error analyzing assessments for user %d: %v", userID, err)
			c.JSON(http.StatusOK, models.SuggestionsResponse{WeakAreas: []models.WeakArea{}, Unavailable: true})
			return
		}
		c.JSON(http.StatusOK, models.SuggestionsResponse{WeakAreas: weak})
	}
}
