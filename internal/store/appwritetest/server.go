// Package appwritetest runs an in-memory, Appwrite-compatible store
// over HTTP for tests. It implements the subset of the REST surface
// the client uses: accounts, email/password sessions, document
// collections with equal/order/limit queries, and file buckets.
package appwritetest

import (
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/healthmaster/healthmaster-go/internal/config"
)

// Fixed identifiers the fake store is provisioned with. Tests reach
// them through (*Server).StoreConfig.
const (
	DatabaseID             = "healthdb"
	UsersCollection        = "users"
	UserProfilesCollection = "user_profiles"
	AppointmentsCollection = "appointments"
	MedicationsCollection  = "medications"
	RemindersCollection    = "reminders"

	StorageBucket = "storage"
	AvatarsBucket = "avatars"
	SoundsBucket  = "sounds"
)

const (
	defaultMaxLoginAttempts = 5
	loginAttemptWindow      = 15 * time.Minute
	sessionTTL              = time.Hour
)

type account struct {
	id    string
	email string
	name  string
	hash  []byte
}

type document struct {
	id      string
	seq     int
	created time.Time
	updated time.Time
	data    map[string]interface{}
}

type collection struct {
	docs    map[string]*document
	nextSeq int
}

type file struct {
	id      string
	name    string
	content []byte
}

// Server is the in-memory store. All state is guarded by mu; handlers
// are safe for concurrent requests.
type Server struct {
	mu           sync.Mutex
	accounts     map[string]*account // keyed by email
	accountsByID map[string]*account
	sessions     map[string]string // session ID -> account ID
	collections  map[string]*collection
	buckets      map[string]map[string]*file

	attempts    *cache.Cache // failed logins per email, TTL-expired
	limiter     *rate.Limiter
	maxAttempts int
	jwtSecret   []byte

	httpSrv *httptest.Server
}

type Option func(*Server)

// WithAuthRate throttles session creation globally; exceeding it
// yields 429 responses.
func WithAuthRate(limit rate.Limit, burst int) Option {
	return func(s *Server) { s.limiter = rate.NewLimiter(limit, burst) }
}

// WithMaxLoginAttempts lowers the per-email failed-login budget.
func WithMaxLoginAttempts(n int) Option {
	return func(s *Server) { s.maxAttempts = n }
}

func New(opts ...Option) *Server {
	s := &Server{
		accounts:     make(map[string]*account),
		accountsByID: make(map[string]*account),
		sessions:     make(map[string]string),
		collections:  make(map[string]*collection),
		buckets:      make(map[string]map[string]*file),
		attempts:     cache.New(loginAttemptWindow, loginAttemptWindow),
		limiter:      rate.NewLimiter(rate.Inf, 0),
		maxAttempts:  defaultMaxLoginAttempts,
		jwtSecret:    []byte(uuid.NewString()),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, col := range []string{
		UsersCollection, UserProfilesCollection, AppointmentsCollection,
		MedicationsCollection, RemindersCollection,
	} {
		s.collections[col] = &collection{docs: make(map[string]*document)}
	}
	for _, bucket := range []string{StorageBucket, AvatarsBucket, SoundsBucket} {
		s.buckets[bucket] = make(map[string]*file)
	}

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	s.routes(engine)
	s.httpSrv = httptest.NewServer(engine)
	return s
}

func (s *Server) Close() {
	s.httpSrv.Close()
}

// URL is the base endpoint including the /v1 prefix.
func (s *Server) URL() string {
	return s.httpSrv.URL + "/v1"
}

// StoreConfig returns a client configuration pointed at this server.
func (s *Server) StoreConfig() config.StoreConfig {
	return config.StoreConfig{
		Endpoint:   s.URL(),
		ProjectID:  "test-project",
		DatabaseID: DatabaseID,
		Collections: config.CollectionsConfig{
			Users:        UsersCollection,
			UserProfiles: UserProfilesCollection,
			Appointments: AppointmentsCollection,
			Medications:  MedicationsCollection,
			Reminders:    RemindersCollection,
		},
		Buckets: config.BucketsConfig{
			Storage: StorageBucket,
			Avatars: AvatarsBucket,
			Sounds:  SoundsBucket,
		},
		Timeout: 10 * time.Second,
	}
}

func (s *Server) routes(engine *gin.Engine) {
	v1 := engine.Group("/v1")

	v1.POST("/account", s.handleCreateAccount)
	v1.GET("/account", s.handleGetAccount)
	v1.POST("/account/sessions/email", s.handleCreateSession)
	v1.DELETE("/account/sessions/:id", s.handleDeleteSession)
	v1.GET("/avatars/initials", s.handleInitialsAvatar)

	docs := v1.Group("/databases/:db/collections/:col/documents")
	docs.POST("", s.handleCreateDocument)
	docs.GET("", s.handleListDocuments)
	docs.GET("/:id", s.handleGetDocument)
	docs.PATCH("/:id", s.handleUpdateDocument)
	docs.DELETE("/:id", s.handleDeleteDocument)

	v1.POST("/storage/buckets/:bucket/files", s.handleCreateFile)
	v1.GET("/storage/buckets/:bucket/files/:id/view", s.handleFileView)
}

// parseSession verifies the session secret's signature and expiry and
// extracts its IDs. It does not check liveness.
func (s *Server) parseSession(secret string) (sessionID, accountID string, ok bool) {
	if secret == "" {
		return "", "", false
	}
	token, err := jwt.Parse(secret, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", false
	}
	sessionID, _ = claims["sid"].(string)
	accountID, _ = claims["uid"].(string)
	return sessionID, accountID, sessionID != "" && accountID != ""
}

// currentAccount resolves the session header to an account ID. The
// secret must reference a live (not deleted) session.
func (s *Server) currentAccount(c *gin.Context) (string, bool) {
	sid, uid, ok := s.parseSession(c.GetHeader("X-Appwrite-Session"))
	if !ok {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if owner, live := s.sessions[sid]; !live || owner != uid {
		return "", false
	}
	return uid, true
}

func (s *Server) signSession(sessionID, accountID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"uid": accountID,
		"exp": time.Now().Add(sessionTTL).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

func fail(c *gin.Context, status int, errType, message string) {
	c.JSON(status, gin.H{
		"message": message,
		"code":    status,
		"type":    errType,
	})
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}
