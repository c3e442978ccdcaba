package practice

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aakash391999/ExamSphare-sub000/internal/models"
)

type fakeStore struct {
	questions []models.Question
	topics    map[string]models.Topic
	added     []models.Question
	nextID    int
}

func (s *fakeStore) ListQuestions(examID string) ([]models.Question, error) {
	var out []models.Question
	for _, q := range s.questions {
		if q.ExamID == examID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *fakeStore) ListQuestionsByIDs(ids []string) ([]models.Question, error) {
	byID := make(map[string]models.Question)
	for _, q := range s.questions {
		byID[q.ID] = q
	}
	var out []models.Question
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *fakeStore) GetTopic(topicID string) (*models.Topic, error) {
	if t, ok := s.topics[topicID]; ok {
		return &t, nil
	}
	return &models.Topic{ID: topicID, Name: "Topic " + topicID}, nil
}

func (s *fakeStore) AddQuestions(examID, topicID string, drafts []models.QuestionDraft) ([]models.Question, error) {
	var out []models.Question
	for _, d := range drafts {
		s.nextID++
		q := models.Question{
			ID:           fmt.Sprintf("gen-%d", s.nextID),
			ExamID:       examID,
			TopicID:      topicID,
			Text:         d.Text,
			Options:      d.Options,
			CorrectIndex: d.CorrectIndex,
			Explanation:  d.Explanation,
		}
		s.questions = append(s.questions, q)
		s.added = append(s.added, q)
		out = append(out, q)
	}
	return out, nil
}

type fakeLedger struct {
	ids []string
}

func (l *fakeLedger) contains(id string) bool {
	for _, v := range l.ids {
		if v == id {
			return true
		}
	}
	return false
}

func (l *fakeLedger) Add(userID int64, questionID string) error {
	if !l.contains(questionID) {
		l.ids = append(l.ids, questionID)
	}
	return nil
}

func (l *fakeLedger) Remove(userID int64, questionID string) error {
	for i, v := range l.ids {
		if v == questionID {
			l.ids = append(l.ids[:i], l.ids[i+1:]...)
			break
		}
	}
	return nil
}

func (l *fakeLedger) List(userID int64) ([]string, error) {
	out := make([]string, len(l.ids))
	copy(out, l.ids)
	return out, nil
}

type fakeHistory struct {
	results []models.QuizResult
}

func (h *fakeHistory) AppendResult(result models.QuizResult) error {
	h.results = append(h.results, result)
	return nil
}

type fakeGenerator struct {
	drafts  []models.QuestionDraft
	err     error
	calls   int
	started chan struct{} // closed when a call begins, if set
	release chan struct{} // blocks the call until closed, if set
}

func (g *fakeGenerator) GenerateQuestions(ctx context.Context, examName, topicName string, count int) ([]models.QuestionDraft, error) {
	g.calls++
	if g.started != nil {
		close(g.started)
	}
	if g.release != nil {
		<-g.release
	}
	return g.drafts, g.err
}

func makeQuestions(n int, examID, topicID string) []models.Question {
	out := make([]models.Question, n)
	for i := range out {
		out[i] = models.Question{
			ID:           fmt.Sprintf("q-%s-%d", topicID, i),
			ExamID:       examID,
			TopicID:      topicID,
			Text:         fmt.Sprintf("question %d", i),
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: 1,
			Explanation:  "because",
		}
	}
	return out
}

func makeDrafts(n int) []models.QuestionDraft {
	out := make([]models.QuestionDraft, n)
	for i := range out {
		out[i] = models.QuestionDraft{
			Text:         fmt.Sprintf("generated %d", i),
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: 0,
			Explanation:  "generated",
		}
	}
	return out
}

// testConfig uses a tick interval long enough that the internal timer never
// fires during a test; ticks are driven manually via Tick().
func testConfig() Config {
	return Config{
		SecondsPerQuestion: 60,
		SampleSize:         10,
		GenerationCount:    10,
		TickInterval:       time.Hour,
	}
}

func newTestController(store *fakeStore, ledger *fakeLedger, history *fakeHistory, gen *fakeGenerator, cfg Config) *Controller {
	exam := models.Exam{ID: "exam-1", Name: "Mock Exam"}
	return NewController(7, exam, store, ledger, history, gen, cfg)
}

func TestStandardSampleSize(t *testing.T) {
	tests := []struct {
		name     string
		poolSize int
		want     int
	}{
		{name: "pool smaller than cap", poolSize: 3, want: 3},
		{name: "pool equal to cap", poolSize: 10, want: 10},
		{name: "pool larger than cap", poolSize: 25, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{questions: makeQuestions(tt.poolSize, "exam-1", "t1")}
			c := newTestController(store, &fakeLedger{}, &fakeHistory{}, &fakeGenerator{}, testConfig())
			defer c.Reset()

			if err := c.Start(context.Background(), ModeStandard, ""); err != nil {
				t.Fatalf("Start() error = %v", err)
			}

			snap := c.Snapshot()
			if snap.Status != StatusActive {
				t.Errorf("status = %v, want active", snap.Status)
			}
			if len(snap.Questions) != tt.want {
				t.Errorf("len(questions) = %d, want %d", len(snap.Questions), tt.want)
			}
			if snap.TimeRemaining != 60*tt.want {
				t.Errorf("time remaining = %d, want %d", snap.TimeRemaining, 60*tt.want)
			}
		})
	}
}

func TestStandardEmptyPool(t *testing.T) {
	store := &fakeStore{}
	c := newTestController(store, &fakeLedger{}, &fakeHistory{}, &fakeGenerator{}, testConfig())

	err := c.Start(context.Background(), ModeStandard, "")
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("Start() error = %v, want ErrNoQuestions", err)
	}
	if snap := c.Snapshot(); snap.Status != StatusSetup {
		t.Errorf("status = %v, want setup", snap.Status)
	}
}

func TestSelectOptionIdempotent(t *testing.T) {
	store := &fakeStore{questions: makeQuestions(3, "exam-1", "t1")}
	c := newTestController(store, &fakeLedger{}, &fakeHistory{}, &fakeGenerator{}, testConfig())
	defer c.Reset()

	if err := c.Start(context.Background(), ModeStandard, ""); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	for _, i := range []int{0, 3, 2} {
		if err := c.SelectOption(i); err != nil {
			t.Fatalf("SelectOption(%d) error = %v", i, err)
		}
	}
	repeated := c.Snapshot()

	c.Reset()
	if err := c.Start(context.Background(), ModeStandard, ""); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := c.SelectOption(2); err != nil {
		t.Fatalf("SelectOption(2) error = %v", err)
	}
	once := c.Snapshot()

	if repeated.SelectedOption == nil || *repeated.SelectedOption != 2 {
		t.Errorf("selected option after repeated calls = %v, want 2", repeated.SelectedOption)
	}
	if once.SelectedOption == nil || *once.SelectedOption != *repeated.SelectedOption {
		t.Errorf("repeated selection differs from single selection")
	}
	if repeated.Submitted || repeated.Score != 0 {
		t.Errorf("selection must not change submitted/score: %+v", repeated)
	}
}

func TestSelectOptionOutOfRange(t *testing.T) {
	store := &fakeStore{questions: makeQuestions(1, "exam-1", "t1")}
	c := newTestController(store, &fakeLedger{}, &fakeHistory{}, &fakeGenerator{}, testConfig())
	defer c.Reset()

	if err := c.Start(context.Background(), ModeStandard, ""); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := c.SelectOption(4); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("SelectOption(4) error = %v, want ErrInvalidOption", err)
	}
	if err := c.SelectOption(-1); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("SelectOption(-1) error = %v, want ErrInvalidOption", err)
	}
}

// Submitting an answer results in exactly one of: score incremented (correct)
// or the question id entering the mistake ledger (incorrect). Never both.
func TestSubmitOutcomeExclusive(t *testing.T) {
	tests := []struct {
		name       string
		selected   int
		wantScore  int
		wantLedger bool
	}{
		{name: "correct answer", selected: 1, wantScore: 1, wantLedger: false},
		{name: "incorrect answer", selected: 0, wantScore: 0, wantLedger: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{questions: makeQuestions(1, "exam-1", "t1")}
			ledger := &fakeLedger{}
			c := newTestController(store, ledger, &fakeHistory{}, &fakeGenerator{}, testConfig())
			defer c.Reset()

			if err := c.Start(context.Background(), ModeStandard, ""); err != nil {
				t.Fatalf("Start() error = %v", err)
			}
			snap := c.Snapshot()
			qid := snap.Questions[0].ID

			if err := c.SelectOption(tt.selected); err != nil {
				t.Fatalf("SelectOption() error = %v", err)
			}
			if err := c.Submit(); err != nil {
				t.Fatalf("Submit() error = %v", err)
			}

			snap = c.Snapshot()
			if snap.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", snap.Score, tt.wantScore)
			}
			if got := ledger.contains(qid); got != tt.wantLedger {
				t.Errorf("ledger contains %s = %v, want %v", qid, got, tt.wantLedger)
			}
			if !snap.Submitted {
				t.Error("submitted = false after Submit()")
			}
		})
	}
}

func TestSubmitGuards(t *testing.T) {
	store := &fakeStore{questions: makeQuestions(2, "exam-1", "t1")}
	c := newTestController(store, &fakeLedger{}, &fakeHistory{}, &fakeGenerator{}, testConfig())
	defer c.Reset()

	if err := c.Submit(); !errors.Is(err, ErrNotActive) {
		t.Errorf("Submit() before start error = %v, want ErrNotActive", err)
	}

	if err := c.Start(context.Background(), ModeStandard, ""); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := c.Submit(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Submit() without selection error = %v, want ErrNoSelection", err)
	}
	if err := c.Next(); !errors.Is(err, ErrNotSubmitted) {
		t.Errorf("Next() before submit error = %v, want ErrNotSubmitted", err)
	}

	if err := c.SelectOption(1); err != nil {
		t.Fatalf("SelectOption() error = %v", err)
	}
	if err := c.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if err := c.Submit(); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("double Submit() error = %v, want ErrAlreadySubmitted", err)
	}
	if err := c.SelectOption(0); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("SelectOption() after submit error = %v, want ErrAlreadySubmitted", err)
	}
}

// Score stays within [0, len(questions)] at every observation point of a full run
func TestScoreBounds(t *testing.T) {
	store := &fakeStore{questions: makeQuestions(5, "exam-1", "t1")}
	c := newTestController(store, &fakeLedger{}, &fakeHistory{}, &fakeGenerator{}, testConfig())
	defer c.Reset()

	if err := c.Start(context.Background(), ModeStandard, ""); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	checkBounds := func() {
		snap := c.Snapshot()
		if snap.Score < 0 || snap.Score > len(snap.Questions) {
			t.Fatalf("score %d out of bounds [0, %d]", snap.Score, len(snap.Questions))
		}
	}

	answers := []int{1, 0, 1, 1, 0} // 3 correct, 2 wrong
	for i, a := range answers {
		checkBounds()
		if err := c.SelectOption(a); err != nil {
			t.Fatalf("SelectOption() error = %v", err)
		}
		checkBounds()
		if err := c.Submit(); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		checkBounds()
		if err := c.Next(); err != nil {
			t.Fatalf("Next() on question %d error = %v", i, err)
		}
	}

	snap := c.Snapshot()
	if snap.Status != StatusFinished {
		t.Errorf("status = %v, want finished", snap.Status)
	}
	if snap.Score != 3 {
		t.Errorf("score = %d, want 3", snap.Score)
	}
}

func TestMistakesEmptyLedger(t *testing.T) {
	store := &fakeStore{questions: makeQuestions(5, "exam-1", "t1")}
	c := newTestController(store, &fakeLedger{}, &fakeHistory{}, &fakeGenerator{}, testConfig())

	err := c.Start(context.Background(), ModeMistakes, "")
	if !errors.Is(err, ErrNoMistakes) {
		t.Fatalf("Start() error = %v, want ErrNoMistakes", err)
	}

	snap := c.Snapshot()
	if snap.Status != StatusSetup {
		t.Errorf("status = %v, want setup", snap.Status)
	}
	if snap.Message != "no mistakes recorded" {
		t.Errorf("message = %q, want %q", snap.Message, "no mistakes recorded")
	}
}

// Answering a question correctly in mistakes mode removes it from the ledger,
// so a subsequent mistakes session no longer includes it.
func TestMistakesRoundTrip(t *testing.T) {
	questions := makeQuestions(2, "exam-1", "t1")
	store := &fakeStore{questions: questions}
	ledger := &fakeLedger{ids: []string{questions[0].ID}}
	c := newTestController(store, ledger, &fakeHistory{}, &fakeGenerator{}, testConfig())
	defer c.Reset()

	if err := c.Start(context.Background(), ModeMistakes, ""); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	snap := c.Snapshot()
	if len(snap.Questions) != 1 || snap.Questions[0].ID != questions[0].ID {
		t.Fatalf("mistakes session questions = %+v, want only %s", snap.Questions, questions[0].ID)
	}

	if err := c.SelectOption(1); err != nil {
		t.Fatalf("SelectOption() error = %v", err)
	}
	if err := c.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if err := c.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	snap = c.Snapshot()
	if snap.Status != StatusFinished {
		t.Fatalf("status = %v, want finished", snap.Status)
	}
	if snap.FixedMistakes != 1 {
		t.Errorf("fixed mistakes = %d, want 1", snap.FixedMistakes)
	}
	if ledger.contains(questions[0].ID) {
		t.Error("question still in mistake ledger after correct answer")
	}

	c.Reset()
	if err := c.Start(context.Background(), ModeMistakes, ""); !errors.Is(err, ErrNoMistakes) {
		t.Errorf("second mistakes session error = %v, want ErrNoMistakes", err)
	}
}

func TestTimeoutForcesFinish(t *testing.T) {
	cfg := testConfig()
	cfg.SecondsPerQuestion = 1

	store := &fakeStore{questions: makeQuestions(2, "exam-1", "t1")}
	c := newTestController(store, &fakeLedger{}, &fakeHistory{}, &fakeGenerator{}, cfg)

	if err := c.Start(context.Background(), ModeStandard, ""); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	c.Tick()
	if snap := c.Snapshot(); snap.Status != StatusActive || snap.TimeRemaining != 1 {
		t.Fatalf("after first tick: status = %v, time = %d", snap.Status, snap.TimeRemaining)
	}

	c.Tick()
	snap := c.Snapshot()
	if snap.Status != StatusFinished {
		t.Errorf("status = %v, want finished after countdown reached zero", snap.Status)
	}
	if snap.CurrentIndex != 0 {
		t.Errorf("current index = %d, forced finish should not advance", snap.CurrentIndex)
	}

	// No tick may be processed after leaving active
	c.Tick()
	if after := c.Snapshot(); after.TimeRemaining != snap.TimeRemaining || after.Status != StatusFinished {
		t.Errorf("tick after finish changed state: %+v", after)
	}
}

// Standard session of 10 where 7 are answered correctly and the timer expires
// on question 8: final score is 7, a history record is written, and the
// unanswered question is not treated as a mistake.
func TestTimerExpiryMidSession(t *testing.T) {
	cfg := testConfig()
	cfg.SecondsPerQuestion = 1

	store := &fakeStore{questions: makeQuestions(10, "exam-1", "t1")}
	ledger := &fakeLedger{}
	history := &fakeHistory{}
	c := newTestController(store, ledger, history, &fakeGenerator{}, cfg)

	if err := c.Start(context.Background(), ModeStandard, ""); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	for i := 0; i < 7; i++ {
		if err := c.SelectOption(1); err != nil {
			t.Fatalf("SelectOption() error = %v", err)
		}
		if err := c.Submit(); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if err := c.Next(); err != nil {
			t.Fatalf("Next() error = %v", err)
		}
	}

	unanswered := c.Snapshot().Questions[7].ID

	for i := 0; i < 10; i++ {
		c.Tick()
	}

	snap := c.Snapshot()
	if snap.Status != StatusFinished {
		t.Fatalf("status = %v, want finished", snap.Status)
	}
	if snap.Score != 7 {
		t.Errorf("score = %d, want 7", snap.Score)
	}
	if ledger.contains(unanswered) {
		t.Error("unanswered question must not be added to the mistake ledger")
	}

	if len(history.results) != 1 {
		t.Fatalf("history records = %d, want 1", len(history.results))
	}
	if r := history.results[0]; r.Score != 7 || r.Total != 10 || r.ExamID != "exam-1" {
		t.Errorf("history record = %+v, want score 7 of 10 for exam-1", r)
	}
}

// Only standard sessions are evaluative; mistakes and topic drills leave no
// history record.
func TestHistoryOnlyForStandardMode(t *testing.T) {
	questions := makeQuestions(1, "exam-1", "t1")
	store := &fakeStore{questions: questions}
	ledger := &fakeLedger{ids: []string{questions[0].ID}}
	history := &fakeHistory{}
	c := newTestController(store, ledger, history, &fakeGenerator{}, testConfig())
	defer c.Reset()

	if err := c.Start(context.Background(), ModeMistakes, ""); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := c.SelectOption(1); err != nil {
		t.Fatalf("SelectOption() error = %v", err)
	}
	if err := c.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if err := c.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if c.Snapshot().Status != StatusFinished {
		t.Fatal("session did not finish")
	}
	if len(history.results) != 0 {
		t.Errorf("history records = %d, want 0 for mistakes mode", len(history.results))
	}
}

func TestTopicBackfill(t *testing.T) {
	store := &fakeStore{questions: makeQuestions(5, "exam-1", "other-topic")}
	gen := &fakeGenerator{drafts: makeDrafts(10)}
	c := newTestController(store, &fakeLedger{}, &fakeHistory{}, gen, testConfig())
	defer c.Reset()

	if err := c.Start(context.Background(), ModeTopic, "topic-42"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	snap := c.Snapshot()
	if snap.Status != StatusActive {
		t.Fatalf("status = %v, want active", snap.Status)
	}
	if len(snap.Questions) != 10 {
		t.Fatalf("len(questions) = %d, want 10", len(snap.Questions))
	}
	for _, q := range snap.Questions {
		if q.TopicID != "topic-42" {
			t.Errorf("question %s topic = %q, want topic-42", q.ID, q.TopicID)
		}
		if q.ExamID != "exam-1" {
			t.Errorf("question %s exam = %q, want exam-1", q.ID, q.ExamID)
		}
	}
	if len(store.added) != 10 {
		t.Errorf("persisted questions = %d, want 10", len(store.added))
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d, want 1", gen.calls)
	}
}

func TestTopicBackfillSkippedWhenPoolExists(t *testing.T) {
	store := &fakeStore{questions: makeQuestions(4, "exam-1", "topic-42")}
	gen := &fakeGenerator{drafts: makeDrafts(10)}
	c := newTestController(store, &fakeLedger{}, &fakeHistory{}, gen, testConfig())
	defer c.Reset()

	if err := c.Start(context.Background(), ModeTopic, "topic-42"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	snap := c.Snapshot()
	if len(snap.Questions) != 4 {
		t.Errorf("len(questions) = %d, want 4 from the existing bank", len(snap.Questions))
	}
	if gen.calls != 0 {
		t.Errorf("generator calls = %d, want 0", gen.calls)
	}
}

func TestGenerationFailure(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{name: "generator error", gen: &fakeGenerator{err: errors.New("rate limited")}},
		{name: "empty result", gen: &fakeGenerator{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			c := newTestController(store, &fakeLedger{}, &fakeHistory{}, tt.gen, testConfig())

			err := c.Start(context.Background(), ModeTopic, "topic-42")
			if err == nil {
				t.Fatal("Start() error = nil, want generation failure")
			}

			snap := c.Snapshot()
			if snap.Status != StatusSetup {
				t.Errorf("status = %v, want setup", snap.Status)
			}
			if snap.Message == "" {
				t.Error("expected a user-facing failure message")
			}
			if len(store.added) != 0 {
				t.Errorf("persisted questions = %d, want 0", len(store.added))
			}
		})
	}
}

// A Reset while the backfill call is in flight invalidates the eventual
// result instead of applying it to a stale session.
func TestResetDiscardsInFlightBackfill(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeGenerator{
		drafts:  makeDrafts(10),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := newTestController(store, &fakeLedger{}, &fakeHistory{}, gen, testConfig())

	done := make(chan error, 1)
	go func() {
		done <- c.Start(context.Background(), ModeTopic, "topic-42")
	}()

	<-gen.started
	if snap := c.Snapshot(); snap.Status != StatusGenerating {
		t.Fatalf("status = %v, want generating while the call is outstanding", snap.Status)
	}

	if err := c.Start(context.Background(), ModeStandard, ""); !errors.Is(err, ErrSessionInProgress) {
		t.Errorf("Start() during generation error = %v, want ErrSessionInProgress", err)
	}

	c.Reset()
	close(gen.release)

	if err := <-done; err != nil {
		t.Fatalf("stale backfill returned error %v, want silent discard", err)
	}

	snap := c.Snapshot()
	if snap.Status != StatusSetup {
		t.Errorf("status = %v, want setup", snap.Status)
	}
	if len(snap.Questions) != 0 {
		t.Errorf("stale generated questions applied to session: %d", len(snap.Questions))
	}
	if len(store.added) != 0 {
		t.Errorf("persisted questions = %d, want 0 after discard", len(store.added))
	}
}

func TestResetReturnsToSetup(t *testing.T) {
	store := &fakeStore{questions: makeQuestions(3, "exam-1", "t1")}
	c := newTestController(store, &fakeLedger{}, &fakeHistory{}, &fakeGenerator{}, testConfig())

	if err := c.Start(context.Background(), ModeStandard, ""); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := c.SelectOption(0); err != nil {
		t.Fatalf("SelectOption() error = %v", err)
	}

	c.Reset()

	snap := c.Snapshot()
	if snap.Status != StatusSetup {
		t.Errorf("status = %v, want setup", snap.Status)
	}
	if len(snap.Questions) != 0 || snap.Score != 0 || snap.SelectedOption != nil || snap.TimeRemaining != 0 {
		t.Errorf("session state not discarded: %+v", snap)
	}

	// A fresh session can be started after reset
	if err := c.Start(context.Background(), ModeStandard, ""); err != nil {
		t.Fatalf("Start() after reset error = %v", err)
	}
	c.Reset()
}
