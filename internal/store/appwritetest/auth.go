package appwritetest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type createAccountRequest struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (s *Server) handleCreateAccount(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "general_argument_invalid", "invalid request body")
		return
	}
	if !validEmail(req.Email) {
		fail(c, http.StatusBadRequest, "general_argument_invalid", "invalid email address")
		return
	}
	if len(req.Password) < 8 {
		fail(c, http.StatusBadRequest, "general_argument_invalid", "password must be at least 8 characters")
		return
	}
	if req.UserID == "" || req.UserID == "unique()" {
		req.UserID = uuid.NewString()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "general_server_error", "failed to hash password")
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[req.Email]; exists {
		s.mu.Unlock()
		fail(c, http.StatusConflict, "user_already_exists", "a user with the same email already exists")
		return
	}
	acc := &account{id: req.UserID, email: req.Email, name: req.Name, hash: hash}
	s.accounts[req.Email] = acc
	s.accountsByID[acc.id] = acc
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{
		"$id":   acc.id,
		"email": acc.email,
		"name":  acc.name,
	})
}

type createSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleCreateSession(c *gin.Context) {
	if !s.limiter.Allow() {
		fail(c, http.StatusTooManyRequests, "general_rate_limit_exceeded", "rate limit exceeded")
		return
	}

	// Creating a session while one is already active is a conflict the
	// caller must resolve; it is never auto-cleared here.
	if _, authed := s.currentAccount(c); authed {
		fail(c, http.StatusConflict, "user_session_already_exists", "session is active, delete it first")
		return
	}

	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "general_argument_invalid", "invalid request body")
		return
	}

	if attempts, found := s.attempts.Get(req.Email); found && attempts.(int) >= s.maxAttempts {
		fail(c, http.StatusTooManyRequests, "general_rate_limit_exceeded", "too many failed login attempts")
		return
	}

	s.mu.Lock()
	acc, exists := s.accounts[req.Email]
	s.mu.Unlock()

	if !exists || bcrypt.CompareHashAndPassword(acc.hash, []byte(req.Password)) != nil {
		s.recordFailedLogin(req.Email)
		fail(c, http.StatusUnauthorized, "user_invalid_credentials", "invalid credentials")
		return
	}
	s.attempts.Delete(req.Email)

	sessionID := uuid.NewString()
	secret, err := s.signSession(sessionID, acc.id)
	if err != nil {
		fail(c, http.StatusInternalServerError, "general_server_error", "failed to create session")
		return
	}

	s.mu.Lock()
	s.sessions[sessionID] = acc.id
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{
		"$id":    sessionID,
		"userId": acc.id,
		"secret": secret,
		"expire": time.Now().Add(sessionTTL).UTC().Format(time.RFC3339),
	})
}

func (s *Server) recordFailedLogin(email string) {
	if _, err := s.attempts.IncrementInt(email, 1); err != nil {
		s.attempts.Set(email, 1, loginAttemptWindow)
	}
}

func (s *Server) handleGetAccount(c *gin.Context) {
	accountID, ok := s.currentAccount(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "general_unauthorized_scope", "missing or invalid session")
		return
	}

	s.mu.Lock()
	acc := s.accountsByID[accountID]
	s.mu.Unlock()
	if acc == nil {
		fail(c, http.StatusUnauthorized, "general_unauthorized_scope", "account no longer exists")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"$id":   acc.id,
		"email": acc.email,
		"name":  acc.name,
	})
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	sid, _, ok := s.parseSession(c.GetHeader("X-Appwrite-Session"))
	if !ok {
		fail(c, http.StatusUnauthorized, "general_unauthorized_scope", "missing or invalid session")
		return
	}

	target := c.Param("id")
	if target == "current" {
		target = sid
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[target]; !exists {
		fail(c, http.StatusUnauthorized, "general_unauthorized_scope", "session not found")
		return
	}
	delete(s.sessions, target)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleInitialsAvatar(c *gin.Context) {
	// A real store renders a PNG; the stub body is enough for clients
	// that only persist the URL.
	c.Data(http.StatusOK, "image/png", []byte("PNG-initials:"+c.Query("name")))
}
