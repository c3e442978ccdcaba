package practice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/aakash391999/ExamSphare-sub000/internal/models"
)

// Mode determines how a session sources its questions
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeMistakes Mode = "mistakes"
	ModeTopic    Mode = "topic"
)

// Status is the lifecycle state of a session
type Status string

const (
	StatusSetup      Status = "setup"
	StatusGenerating Status = "generating"
	StatusActive     Status = "active"
	StatusFinished   Status = "finished"
)

var (
	ErrSessionInProgress = errors.New("a session is already in progress")
	ErrNoMistakes        = errors.New("no mistakes recorded")
	ErrNoQuestions       = errors.New("no questions available")
	ErrGenerationFailed  = errors.New("question generation failed")
	ErrNotActive         = errors.New("no active session")
	ErrInvalidOption     = errors.New("option index out of range")
	ErrAlreadySubmitted  = errors.New("answer already submitted")
	ErrNoSelection       = errors.New("no option selected")
	ErrNotSubmitted      = errors.New("current question not submitted")
	ErrInvalidMode       = errors.New("invalid practice mode")
)

// QuestionStore provides read/write access to the question bank
type QuestionStore interface {
	ListQuestions(examID string) ([]models.Question, error)
	ListQuestionsByIDs(ids []string) ([]models.Question, error)
	GetTopic(topicID string) (*models.Topic, error)
	AddQuestions(examID, topicID string, drafts []models.QuestionDraft) ([]models.Question, error)
}

// MistakeLedger is the persisted set of question ids a user answered incorrectly
type MistakeLedger interface {
	Add(userID int64, questionID string) error
	Remove(userID int64, questionID string) error
	List(userID int64) ([]string, error)
}

// HistoryLedger records completed standard-mode quiz results
type HistoryLedger interface {
	AppendResult(result models.QuizResult) error
}

// Generator produces new questions on demand for a topic with an empty bank
type Generator interface {
	GenerateQuestions(ctx context.Context, examName, topicName string, count int) ([]models.QuestionDraft, error)
}

// Config tunes session behavior
type Config struct {
	SecondsPerQuestion int           // time budget per question
	SampleSize         int           // cap for unscoped standard sessions
	GenerationCount    int           // questions requested from the generator on backfill
	TickInterval       time.Duration // countdown resolution, defaults to one second
}

// DefaultConfig returns the stock session tuning
func DefaultConfig() Config {
	return Config{
		SecondsPerQuestion: 60,
		SampleSize:         10,
		GenerationCount:    10,
		TickInterval:       time.Second,
	}
}

// Session is a read-only snapshot of controller state for rendering
type Session struct {
	Status         Status            `json:"status"`
	Mode           Mode              `json:"mode"`
	Questions      []models.Question `json:"questions"`
	CurrentIndex   int               `json:"current_index"`
	SelectedOption *int              `json:"selected_option"`
	Submitted      bool              `json:"submitted"`
	Score          int               `json:"score"`
	TimeRemaining  int               `json:"time_remaining"`
	FixedMistakes  int               `json:"fixed_mistakes"`
	Message        string            `json:"message,omitempty"`
}

// Controller owns the lifecycle of one user's practice sessions for an exam.
// All collaborators are injected; there is no ambient state. The countdown
// timer and user-triggered transitions are serialized on the same mutex, so
// no tick can be observed after the session leaves the active state.
type Controller struct {
	cfg       Config
	userID    int64
	exam      models.Exam
	store     QuestionStore
	mistakes  MistakeLedger
	history   HistoryLedger
	generator Generator

	mu             sync.Mutex
	status         Status
	mode           Mode
	questions      []models.Question
	currentIndex   int
	selectedOption *int
	submitted      bool
	score          int
	timeRemaining  int
	fixedMistakes  int
	message        string
	genSeq         int // invalidates in-flight backfill results after Reset
	timerStop      chan struct{}
}

// NewController creates a session controller for one user and exam
func NewController(userID int64, exam models.Exam, store QuestionStore, mistakes MistakeLedger, history HistoryLedger, generator Generator, cfg Config) *Controller {
	if cfg.SecondsPerQuestion <= 0 {
		cfg.SecondsPerQuestion = 60
	}
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = 10
	}
	if cfg.GenerationCount <= 0 {
		cfg.GenerationCount = 10
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	return &Controller{
		cfg:       cfg,
		userID:    userID,
		exam:      exam,
		store:     store,
		mistakes:  mistakes,
		history:   history,
		generator: generator,
		status:    StatusSetup,
	}
}

// Snapshot returns a copy of the current session state
func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	questions := make([]models.Question, len(c.questions))
	copy(questions, c.questions)

	var selected *int
	if c.selectedOption != nil {
		v := *c.selectedOption
		selected = &v
	}

	return Session{
		Status:         c.status,
		Mode:           c.mode,
		Questions:      questions,
		CurrentIndex:   c.currentIndex,
		SelectedOption: selected,
		Submitted:      c.submitted,
		Score:          c.score,
		TimeRemaining:  c.timeRemaining,
		FixedMistakes:  c.fixedMistakes,
		Message:        c.message,
	}
}

// Start begins a new practice session. topicID scopes standard mode to a
// topic and is required for topic mode. When a scoped pool is empty the
// question bank is backfilled from the generator; during that call the
// controller reports StatusGenerating and rejects further input.
func (c *Controller) Start(ctx context.Context, mode Mode, topicID string) error {
	c.mu.Lock()

	if c.status == StatusActive || c.status == StatusGenerating {
		c.mu.Unlock()
		return ErrSessionInProgress
	}
	c.message = ""

	switch mode {
	case ModeMistakes:
		err := c.startMistakesLocked()
		c.mu.Unlock()
		return err

	case ModeTopic:
		if topicID == "" {
			c.mu.Unlock()
			return ErrInvalidMode
		}
		return c.startScopedLocked(ctx, mode, topicID)

	case ModeStandard:
		if topicID != "" {
			// Standard with an explicit topic scope behaves like topic mode
			return c.startScopedLocked(ctx, mode, topicID)
		}
		err := c.startStandardLocked()
		c.mu.Unlock()
		return err

	default:
		c.mu.Unlock()
		return ErrInvalidMode
	}
}

// startMistakesLocked resolves the mistake-set pool. An empty pool is a
// steady-state message, not an error that needs a retry path.
func (c *Controller) startMistakesLocked() error {
	ids, err := c.mistakes.List(c.userID)
	if err != nil {
		c.message = "could not load your mistake book"
		return fmt.Errorf("list mistakes: %w", err)
	}
	if len(ids) == 0 {
		c.message = "no mistakes recorded"
		return ErrNoMistakes
	}

	pool, err := c.store.ListQuestionsByIDs(ids)
	if err != nil {
		c.message = "could not load your mistake book"
		return fmt.Errorf("load mistake questions: %w", err)
	}
	if len(pool) == 0 {
		c.message = "no mistakes recorded"
		return ErrNoMistakes
	}

	c.activateLocked(ModeMistakes, pool)
	return nil
}

// startStandardLocked samples up to SampleSize questions from the whole exam
func (c *Controller) startStandardLocked() error {
	pool, err := c.store.ListQuestions(c.exam.ID)
	if err != nil {
		c.message = "could not load questions"
		return fmt.Errorf("list questions: %w", err)
	}
	if len(pool) == 0 {
		c.message = "no questions available for this exam yet"
		return ErrNoQuestions
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > c.cfg.SampleSize {
		pool = pool[:c.cfg.SampleSize]
	}

	c.activateLocked(ModeStandard, pool)
	return nil
}

// startScopedLocked resolves a topic-scoped pool, falling back to on-demand
// generation when the bank has nothing for the topic. The mutex is released
// around the generator call; a generation token detects a Reset that happened
// while the call was in flight so stale results are discarded.
// Called with the mutex held; always releases it.
func (c *Controller) startScopedLocked(ctx context.Context, mode Mode, topicID string) error {
	pool, err := c.store.ListQuestions(c.exam.ID)
	if err != nil {
		c.message = "could not load questions"
		c.mu.Unlock()
		return fmt.Errorf("list questions: %w", err)
	}

	var scoped []models.Question
	for _, q := range pool {
		if q.TopicID == topicID {
			scoped = append(scoped, q)
		}
	}

	if len(scoped) > 0 {
		c.activateLocked(mode, scoped)
		c.mu.Unlock()
		return nil
	}

	topic, err := c.store.GetTopic(topicID)
	if err != nil {
		c.message = "could not load questions"
		c.mu.Unlock()
		return fmt.Errorf("resolve topic %s: %w", topicID, err)
	}

	c.status = StatusGenerating
	c.genSeq++
	seq := c.genSeq
	c.mu.Unlock()

	drafts, genErr := c.generator.GenerateQuestions(ctx, c.exam.Name, topic.Name, c.cfg.GenerationCount)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.genSeq != seq || c.status != StatusGenerating {
		// Reset happened while the call was in flight; drop the result
		return nil
	}

	if genErr != nil || len(drafts) == 0 {
		c.status = StatusSetup
		c.message = "question generation failed, please try again"
		if genErr != nil {
			return fmt.Errorf("%w: %v", ErrGenerationFailed, genErr)
		}
		return ErrGenerationFailed
	}

	questions, err := c.store.AddQuestions(c.exam.ID, topicID, drafts)
	if err != nil {
		c.status = StatusSetup
		c.message = "question generation failed, please try again"
		return fmt.Errorf("persist generated questions: %w", err)
	}

	c.activateLocked(mode, questions)
	return nil
}

// activateLocked transitions setup -> active with a resolved question list
func (c *Controller) activateLocked(mode Mode, questions []models.Question) {
	c.mode = mode
	c.questions = questions
	c.currentIndex = 0
	c.selectedOption = nil
	c.submitted = false
	c.score = 0
	c.fixedMistakes = 0
	c.timeRemaining = c.cfg.SecondsPerQuestion * len(questions)
	c.status = StatusActive
	c.startTimerLocked()
}

// SelectOption records the user's current choice. Idempotent before submit.
func (c *Controller) SelectOption(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusActive {
		return ErrNotActive
	}
	if c.submitted {
		return ErrAlreadySubmitted
	}
	q := c.questions[c.currentIndex]
	if index < 0 || index >= len(q.Options) {
		return ErrInvalidOption
	}

	c.selectedOption = &index
	return nil
}

// Submit locks in the selected option, scores it, and updates the mistake
// ledger. Ledger writes are fire-and-forget; a failed write never blocks the
// session.
func (c *Controller) Submit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusActive {
		return ErrNotActive
	}
	if c.submitted {
		return ErrAlreadySubmitted
	}
	if c.selectedOption == nil {
		return ErrNoSelection
	}

	c.submitted = true
	q := c.questions[c.currentIndex]

	if *c.selectedOption == q.CorrectIndex {
		c.score++
		if c.mode == ModeMistakes {
			c.fixedMistakes++
			if err := c.mistakes.Remove(c.userID, q.ID); err != nil {
				log.Printf("Warning: failed to remove mistake %s: %v", q.ID, err)
			}
		}
	} else {
		if err := c.mistakes.Add(c.userID, q.ID); err != nil {
			log.Printf("Warning: failed to record mistake %s: %v", q.ID, err)
		}
	}

	return nil
}

// Next advances to the next question, or finishes the session on the last one
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusActive {
		return ErrNotActive
	}
	if !c.submitted {
		return ErrNotSubmitted
	}

	if c.currentIndex == len(c.questions)-1 {
		c.finishLocked()
		return nil
	}

	c.currentIndex++
	c.selectedOption = nil
	c.submitted = false
	return nil
}

// Tick advances the countdown by one second. Driven by the internal timer;
// exported so a caller-owned clock can drive it instead.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusActive {
		return
	}

	c.timeRemaining--
	if c.timeRemaining <= 0 {
		c.timeRemaining = 0
		// The current question was never submitted, so it counts as
		// incorrect without entering the mistake ledger.
		c.finishLocked()
	}
}

// Reset discards the session and returns to setup. Any in-flight backfill
// result is invalidated.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimerLocked()
	c.genSeq++
	c.status = StatusSetup
	c.mode = ""
	c.questions = nil
	c.currentIndex = 0
	c.selectedOption = nil
	c.submitted = false
	c.score = 0
	c.fixedMistakes = 0
	c.timeRemaining = 0
	c.message = ""
}

// finishLocked transitions active -> finished. Only standard sessions are
// evaluative, so only they leave a history record.
func (c *Controller) finishLocked() {
	c.stopTimerLocked()
	c.status = StatusFinished

	if c.mode != ModeStandard {
		return
	}
	result := models.QuizResult{
		UserID: c.userID,
		ExamID: c.exam.ID,
		Score:  c.score,
		Total:  len(c.questions),
		Date:   time.Now(),
	}
	if err := c.history.AppendResult(result); err != nil {
		log.Printf("Warning: failed to record quiz result: %v", err)
	}
}

func (c *Controller) startTimerLocked() {
	c.stopTimerLocked()
	stop := make(chan struct{})
	c.timerStop = stop

	go func() {
		ticker := time.NewTicker(c.cfg.TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				c.Tick()
			}
		}
	}()
}

func (c *Controller) stopTimerLocked() {
	if c.timerStop != nil {
		close(c.timerStop)
		c.timerStop = nil
	}
}
