package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jobha/backend/models"
)

var (
	ErrDocumentNotFound   = errors.New("document not found")
	ErrAnalysisNotFound   = errors.New("analysis not available for this document")
	ErrTailoredCVNotFound = errors.New("tailored CV not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user with this email already exists")
)

// database is the full on-disk collection. Every write replaces the whole
// file via temp-file-and-rename so an interrupted write never leaves a
// half-written database behind.
type database struct {
	Documents []models.Document `json:"documents"`
	Users     []storedUser      `json:"users"`
}

// storedUser carries the password hash, which models.User deliberately
// excludes from JSON so it can never leak into an API response.
type storedUser struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

func toStored(user *models.User) storedUser {
	return storedUser{User: *user, PasswordHash: user.Password}
}

func (su *storedUser) toModel() *models.User {
	user := su.User
	user.Password = su.PasswordHash
	return &user
}

// JSONStore persists all application data in a single JSON file. Operations
// are read-modify-write under one mutex; last write wins.
type JSONStore struct {
	mu   sync.Mutex
	path string
	log  *zap.Logger
}

// NewJSONStore opens (or creates) the database file under dataDir.
func NewJSONStore(dataDir, filename string, log *zap.Logger) (*JSONStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &JSONStore{path: filepath.Join(dataDir, filename), log: log}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		if err := s.write(&database{}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// read loads the database. A missing or corrupt file yields a fresh empty
// database rather than an error; losing a corrupt toy database beats
// refusing every request.
func (s *JSONStore) read() *database {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("failed to read database file, starting fresh", zap.Error(err))
		}
		return &database{}
	}

	var db database
	if err := json.Unmarshal(data, &db); err != nil {
		s.log.Warn("database file is corrupt, starting fresh", zap.Error(err))
		return &database{}
	}
	return &db
}

func (s *JSONStore) write(db *database) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode database: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write database: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace database: %w", err)
	}
	return nil
}

// AddDocument stores a new document record.
func (s *JSONStore) AddDocument(doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db := s.read()
	db.Documents = append(db.Documents, *doc)
	return s.write(db)
}

// GetDocument returns one document by ID.
func (s *JSONStore) GetDocument(id string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db := s.read()
	for i := range db.Documents {
		if db.Documents[i].ID == id {
			doc := db.Documents[i]
			return &doc, nil
		}
	}
	return nil, ErrDocumentNotFound
}

// ListDocuments returns all documents, newest first.
func (s *JSONStore) ListDocuments() ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db := s.read()
	docs := make([]models.Document, len(db.Documents))
	copy(docs, db.Documents)
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

// DeleteDocument removes a document and reports its stored file path so the
// caller can clean up the upload.
func (s *JSONStore) DeleteDocument(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db := s.read()
	for i := range db.Documents {
		if db.Documents[i].ID == id {
			filePath := db.Documents[i].FilePath
			db.Documents = append(db.Documents[:i], db.Documents[i+1:]...)
			if err := s.write(db); err != nil {
				return "", err
			}
			return filePath, nil
		}
	}
	return "", ErrDocumentNotFound
}

// updateDocument applies fn to the stored document and writes the result.
func (s *JSONStore) updateDocument(id string, fn func(doc *models.Document)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db := s.read()
	for i := range db.Documents {
		if db.Documents[i].ID == id {
			fn(&db.Documents[i])
			db.Documents[i].UpdatedAt = time.Now()
			return s.write(db)
		}
	}
	return ErrDocumentNotFound
}

// SaveAnalysis attaches an analysis to a document.
func (s *JSONStore) SaveAnalysis(docID string, analysis *models.CVAnalysis) error {
	return s.updateDocument(docID, func(doc *models.Document) {
		doc.Analysis = analysis
	})
}

// GetAnalysis returns a document's stored analysis.
func (s *JSONStore) GetAnalysis(docID string) (*models.CVAnalysis, error) {
	doc, err := s.GetDocument(docID)
	if err != nil {
		return nil, err
	}
	if doc.Analysis == nil {
		return nil, ErrAnalysisNotFound
	}
	return doc.Analysis, nil
}

// SaveJobs replaces a document's job list.
func (s *JSONStore) SaveJobs(docID string, jobs []models.JobPosting) error {
	return s.updateDocument(docID, func(doc *models.Document) {
		doc.Jobs = jobs
	})
}

// GetJobs returns a document's stored jobs sorted by match score descending.
// Streaming delivers arrival order; the sorted view exists only here.
func (s *JSONStore) GetJobs(docID string) ([]models.JobPosting, error) {
	doc, err := s.GetDocument(docID)
	if err != nil {
		return nil, err
	}

	jobs := make([]models.JobPosting, len(doc.Jobs))
	copy(jobs, doc.Jobs)
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].MatchScore > jobs[j].MatchScore
	})
	return jobs, nil
}

// SaveTailoredCV stores a tailored CV for one (document, job) pair.
func (s *JSONStore) SaveTailoredCV(docID, jobID string, cv models.TailoredCV) error {
	return s.updateDocument(docID, func(doc *models.Document) {
		if doc.TailoredCVs == nil {
			doc.TailoredCVs = make(map[string]models.TailoredCV)
		}
		doc.TailoredCVs[jobID] = cv
	})
}

// GetTailoredCV returns the tailored CV for one (document, job) pair.
func (s *JSONStore) GetTailoredCV(docID, jobID string) (*models.TailoredCV, error) {
	doc, err := s.GetDocument(docID)
	if err != nil {
		return nil, err
	}
	cv, ok := doc.TailoredCVs[jobID]
	if !ok {
		return nil, ErrTailoredCVNotFound
	}
	return &cv, nil
}

// CreateUser stores a new user. Email must be unique.
func (s *JSONStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db := s.read()
	for i := range db.Users {
		if db.Users[i].Email == user.Email {
			return ErrUserExists
		}
	}
	db.Users = append(db.Users, toStored(user))
	return s.write(db)
}

// GetUserByEmail returns a user by email address.
func (s *JSONStore) GetUserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db := s.read()
	for i := range db.Users {
		if db.Users[i].Email == email {
			return db.Users[i].toModel(), nil
		}
	}
	return nil, ErrUserNotFound
}

// GetUserByID returns a user by ID.
func (s *JSONStore) GetUserByID(id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db := s.read()
	for i := range db.Users {
		if db.Users[i].ID == id {
			return db.Users[i].toModel(), nil
		}
	}
	return nil, ErrUserNotFound
}

// UpdateUser replaces the stored user with the same ID.
func (s *JSONStore) UpdateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db := s.read()
	for i := range db.Users {
		if db.Users[i].ID == user.ID {
			user.UpdatedAt = time.Now()
			db.Users[i] = toStored(user)
			return s.write(db)
		}
	}
	return ErrUserNotFound
}
