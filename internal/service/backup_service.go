package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/aakash391999/ExamSphare-sub000/internal/database"
)

// BackupData is the complete portable snapshot of the database. Sessions and
// notifications are ephemeral and deliberately excluded.
type BackupData struct {
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	Users      []UserBackup      `json:"users"`
	Exams      []ExamBackup      `json:"exams"`
	Questions  []QuestionBackup  `json:"questions"`
	Mistakes   []MistakeBackup   `json:"mistakes"`
	Results    []ResultBackup    `json:"results"`
	Posts      []PostBackup      `json:"posts"`
	Follows    []FollowBackup    `json:"follows"`
	Messages   []MessageBackup   `json:"messages"`
	Flashcards []FlashcardBackup `json:"flashcards"`
	Plans      []PlanBackup      `json:"plans"`
}

type UserBackup struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name"`
	Bio          string    `json:"bio"`
	OAuthSubject string    `json:"oauth_subject"`
	CreatedAt    time.Time `json:"created_at"`
}

type ExamBackup struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	Subjects    []SubjectBackup `json:"subjects"`
	Topics      []TopicBackup   `json:"topics"`
}

type SubjectBackup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TopicBackup struct {
	ID        string `json:"id"`
	SubjectID string `json:"subject_id"`
	Name      string `json:"name"`
}

type QuestionBackup struct {
	ID           string    `json:"id"`
	ExamID       string    `json:"exam_id"`
	TopicID      string    `json:"topic_id"`
	Text         string    `json:"text"`
	Options      string    `json:"options"`
	CorrectIndex int       `json:"correct_index"`
	Explanation  string    `json:"explanation"`
	CreatedAt    time.Time `json:"created_at"`
}

type MistakeBackup struct {
	UserID     int64     `json:"user_id"`
	QuestionID string    `json:"question_id"`
	AddedAt    time.Time `json:"added_at"`
}

type ResultBackup struct {
	UserID int64     `json:"user_id"`
	ExamID string    `json:"exam_id"`
	Score  int       `json:"score"`
	Total  int       `json:"total"`
	Date   time.Time `json:"date"`
}

type PostBackup struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type FollowBackup struct {
	FollowerID int64 `json:"follower_id"`
	FolloweeID int64 `json:"followee_id"`
}

type MessageBackup struct {
	ID          int64     `json:"id"`
	SenderID    int64     `json:"sender_id"`
	RecipientID int64     `json:"recipient_id"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}

type FlashcardBackup struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	TopicID      string    `json:"topic_id"`
	Front        string    `json:"front"`
	Back         string    `json:"back"`
	IntervalDays int       `json:"interval_days"`
	DueAt        time.Time `json:"due_at"`
	Reviews      int       `json:"reviews"`
	Lapses       int       `json:"lapses"`
	CreatedAt    time.Time `json:"created_at"`
}

type PlanBackup struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"user_id"`
	ExamID    string       `json:"exam_id"`
	Title     string       `json:"title"`
	CreatedAt time.Time    `json:"created_at"`
	Tasks     []TaskBackup `json:"tasks"`
}

type TaskBackup struct {
	TopicID string    `json:"topic_id"`
	Title   string    `json:"title"`
	DueDate time.Time `json:"due_date"`
	Done    bool      `json:"done"`
}

// BackupService handles database export and restore
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	return s.ExportToWriter(file)
}

// ExportToWriter writes a complete backup of the database to a writer
func (s *BackupService) ExportToWriter(w io.Writer) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	steps := []struct {
		name string
		fn   func(*BackupData) error
	}{
		{"users", s.exportUsers},
		{"exams", s.exportExams},
		{"questions", s.exportQuestions},
		{"mistakes", s.exportMistakes},
		{"results", s.exportResults},
		{"posts", s.exportPosts},
		{"follows", s.exportFollows},
		{"messages", s.exportMessages},
		{"flashcards", s.exportFlashcards},
		{"plans", s.exportPlans},
	}
	for _, step := range steps {
		if err := step.fn(backup); err != nil {
			return fmt.Errorf("failed to export %s: %w", step.name, err)
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d users, %d exams, %d questions, %d mistakes, %d results, %d posts, %d flashcards, %d plans",
		len(backup.Users), len(backup.Exams), len(backup.Questions), len(backup.Mistakes),
		len(backup.Results), len(backup.Posts), len(backup.Flashcards), len(backup.Plans))

	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup reader
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Import in dependency order
	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importExams(backup.Exams); err != nil {
		return fmt.Errorf("failed to import exams: %w", err)
	}
	if err := s.importQuestions(backup.Questions); err != nil {
		return fmt.Errorf("failed to import questions: %w", err)
	}
	if err := s.importMistakes(backup.Mistakes); err != nil {
		return fmt.Errorf("failed to import mistakes: %w", err)
	}
	if err := s.importResults(backup.Results); err != nil {
		return fmt.Errorf("failed to import results: %w", err)
	}
	if err := s.importPosts(backup.Posts); err != nil {
		return fmt.Errorf("failed to import posts: %w", err)
	}
	if err := s.importFollows(backup.Follows); err != nil {
		return fmt.Errorf("failed to import follows: %w", err)
	}
	if err := s.importMessages(backup.Messages); err != nil {
		return fmt.Errorf("failed to import messages: %w", err)
	}
	if err := s.importFlashcards(backup.Flashcards); err != nil {
		return fmt.Errorf("failed to import flashcards: %w", err)
	}
	if err := s.importPlans(backup.Plans); err != nil {
		return fmt.Errorf("failed to import plans: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, email, password_hash, name, bio, oauth_subject, created_at FROM users ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Bio, &u.OAuthSubject, &u.CreatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportExams(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, name, description, created_at FROM exams ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e ExamBackup
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.CreatedAt); err != nil {
			return err
		}
		backup.Exams = append(backup.Exams, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range backup.Exams {
		exam := &backup.Exams[i]
		if err := s.exportSubjects(exam); err != nil {
			return err
		}
		if err := s.exportTopics(exam); err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) exportSubjects(exam *ExamBackup) error {
	rows, err := s.db.Query("SELECT id, name FROM subjects WHERE exam_id = ? ORDER BY id", exam.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var sub SubjectBackup
		if err := rows.Scan(&sub.ID, &sub.Name); err != nil {
			return err
		}
		exam.Subjects = append(exam.Subjects, sub)
	}
	return rows.Err()
}

func (s *BackupService) exportTopics(exam *ExamBackup) error {
	rows, err := s.db.Query("SELECT id, subject_id, name FROM topics WHERE exam_id = ? ORDER BY id", exam.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t TopicBackup
		if err := rows.Scan(&t.ID, &t.SubjectID, &t.Name); err != nil {
			return err
		}
		exam.Topics = append(exam.Topics, t)
	}
	return rows.Err()
}

func (s *BackupService) exportQuestions(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, exam_id, topic_id, text, options, correct_index, explanation, created_at FROM questions ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var q QuestionBackup
		if err := rows.Scan(&q.ID, &q.ExamID, &q.TopicID, &q.Text, &q.Options, &q.CorrectIndex, &q.Explanation, &q.CreatedAt); err != nil {
			return err
		}
		backup.Questions = append(backup.Questions, q)
	}
	return rows.Err()
}

func (s *BackupService) exportMistakes(backup *BackupData) error {
	rows, err := s.db.Query("SELECT user_id, question_id, added_at FROM mistakes ORDER BY user_id, added_at")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var m MistakeBackup
		if err := rows.Scan(&m.UserID, &m.QuestionID, &m.AddedAt); err != nil {
			return err
		}
		backup.Mistakes = append(backup.Mistakes, m)
	}
	return rows.Err()
}

func (s *BackupService) exportResults(backup *BackupData) error {
	rows, err := s.db.Query("SELECT user_id, exam_id, score, total, date FROM quiz_results ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var res ResultBackup
		if err := rows.Scan(&res.UserID, &res.ExamID, &res.Score, &res.Total, &res.Date); err != nil {
			return err
		}
		backup.Results = append(backup.Results, res)
	}
	return rows.Err()
}

func (s *BackupService) exportPosts(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, user_id, body, created_at FROM posts ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p PostBackup
		if err := rows.Scan(&p.ID, &p.UserID, &p.Body, &p.CreatedAt); err != nil {
			return err
		}
		backup.Posts = append(backup.Posts, p)
	}
	return rows.Err()
}

func (s *BackupService) exportFollows(backup *BackupData) error {
	rows, err := s.db.Query("SELECT follower_id, followee_id FROM follows ORDER BY follower_id, followee_id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var f FollowBackup
		if err := rows.Scan(&f.FollowerID, &f.FolloweeID); err != nil {
			return err
		}
		backup.Follows = append(backup.Follows, f)
	}
	return rows.Err()
}

func (s *BackupService) exportMessages(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, sender_id, recipient_id, body, created_at FROM messages ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var m MessageBackup
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Body, &m.CreatedAt); err != nil {
			return err
		}
		backup.Messages = append(backup.Messages, m)
	}
	return rows.Err()
}

func (s *BackupService) exportFlashcards(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, user_id, topic_id, front, back, interval_days, due_at, reviews, lapses, created_at FROM flashcards ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c FlashcardBackup
		if err := rows.Scan(&c.ID, &c.UserID, &c.TopicID, &c.Front, &c.Back, &c.IntervalDays, &c.DueAt, &c.Reviews, &c.Lapses, &c.CreatedAt); err != nil {
			return err
		}
		backup.Flashcards = append(backup.Flashcards, c)
	}
	return rows.Err()
}

func (s *BackupService) exportPlans(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, user_id, exam_id, title, created_at FROM study_plans ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p PlanBackup
		if err := rows.Scan(&p.ID, &p.UserID, &p.ExamID, &p.Title, &p.CreatedAt); err != nil {
			return err
		}
		backup.Plans = append(backup.Plans, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range backup.Plans {
		plan := &backup.Plans[i]
		taskRows, err := s.db.Query("SELECT topic_id, title, due_date, done FROM plan_tasks WHERE plan_id = ? ORDER BY id", plan.ID)
		if err != nil {
			return err
		}
		for taskRows.Next() {
			var t TaskBackup
			if err := taskRows.Scan(&t.TopicID, &t.Title, &t.DueDate, &t.Done); err != nil {
				taskRows.Close()
				return err
			}
			plan.Tasks = append(plan.Tasks, t)
		}
		if err := taskRows.Err(); err != nil {
			taskRows.Close()
			return err
		}
		taskRows.Close()
	}
	return nil
}

func (s *BackupService) importUsers(users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		_, err := s.db.Exec(
			"INSERT INTO users (id, email, password_hash, name, bio, oauth_subject, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			u.ID, u.Email, u.PasswordHash, u.Name, u.Bio, u.OAuthSubject, u.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importExams(exams []ExamBackup) error {
	log.Printf("Importing %d exams...", len(exams))
	for _, e := range exams {
		_, err := s.db.Exec(
			"INSERT INTO exams (id, name, description, created_at) VALUES (?, ?, ?, ?)",
			e.ID, e.Name, e.Description, e.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import exam %s: %w", e.ID, err)
		}

		for _, sub := range e.Subjects {
			_, err := s.db.Exec(
				"INSERT INTO subjects (id, exam_id, name) VALUES (?, ?, ?)",
				sub.ID, e.ID, sub.Name)
			if err != nil {
				return fmt.Errorf("failed to import subject %s: %w", sub.ID, err)
			}
		}

		for _, t := range e.Topics {
			_, err := s.db.Exec(
				"INSERT INTO topics (id, exam_id, subject_id, name) VALUES (?, ?, ?, ?)",
				t.ID, e.ID, t.SubjectID, t.Name)
			if err != nil {
				return fmt.Errorf("failed to import topic %s: %w", t.ID, err)
			}
		}
	}
	return nil
}

func (s *BackupService) importQuestions(questions []QuestionBackup) error {
	log.Printf("Importing %d questions...", len(questions))
	for _, q := range questions {
		_, err := s.db.Exec(
			"INSERT INTO questions (id, exam_id, topic_id, text, options, correct_index, explanation, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			q.ID, q.ExamID, q.TopicID, q.Text, q.Options, q.CorrectIndex, q.Explanation, q.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import question %s: %w", q.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importMistakes(mistakes []MistakeBackup) error {
	log.Printf("Importing %d mistakes...", len(mistakes))
	for _, m := range mistakes {
		_, err := s.db.Exec(
			"INSERT INTO mistakes (user_id, question_id, added_at) VALUES (?, ?, ?)",
			m.UserID, m.QuestionID, m.AddedAt)
		if err != nil {
			return fmt.Errorf("failed to import mistake %d/%s: %w", m.UserID, m.QuestionID, err)
		}
	}
	return nil
}

func (s *BackupService) importResults(results []ResultBackup) error {
	log.Printf("Importing %d results...", len(results))
	for _, res := range results {
		_, err := s.db.Exec(
			"INSERT INTO quiz_results (user_id, exam_id, score, total, date) VALUES (?, ?, ?, ?, ?)",
			res.UserID, res.ExamID, res.Score, res.Total, res.Date)
		if err != nil {
			return fmt.Errorf("failed to import result for user %d: %w", res.UserID, err)
		}
	}
	return nil
}

func (s *BackupService) importPosts(posts []PostBackup) error {
	log.Printf("Importing %d posts...", len(posts))
	for _, p := range posts {
		_, err := s.db.Exec(
			"INSERT INTO posts (id, user_id, body, created_at) VALUES (?, ?, ?, ?)",
			p.ID, p.UserID, p.Body, p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import post %d: %w", p.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importFollows(follows []FollowBackup) error {
	log.Printf("Importing %d follows...", len(follows))
	for _, f := range follows {
		_, err := s.db.Exec(
			"INSERT INTO follows (follower_id, followee_id) VALUES (?, ?)",
			f.FollowerID, f.FolloweeID)
		if err != nil {
			return fmt.Errorf("failed to import follow %d->%d: %w", f.FollowerID, f.FolloweeID, err)
		}
	}
	return nil
}

func (s *BackupService) importMessages(messages []MessageBackup) error {
	log.Printf("Importing %d messages...", len(messages))
	for _, m := range messages {
		_, err := s.db.Exec(
			"INSERT INTO messages (id, sender_id, recipient_id, body, created_at) VALUES (?, ?, ?, ?, ?)",
			m.ID, m.SenderID, m.RecipientID, m.Body, m.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import message %d: %w", m.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importFlashcards(cards []FlashcardBackup) error {
	log.Printf("Importing %d flashcards...", len(cards))
	for _, c := range cards {
		_, err := s.db.Exec(
			"INSERT INTO flashcards (id, user_id, topic_id, front, back, interval_days, due_at, reviews, lapses, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			c.ID, c.UserID, c.TopicID, c.Front, c.Back, c.IntervalDays, c.DueAt, c.Reviews, c.Lapses, c.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import flashcard %d: %w", c.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importPlans(plans []PlanBackup) error {
	log.Printf("Importing %d plans...", len(plans))
	for _, p := range plans {
		_, err := s.db.Exec(
			"INSERT INTO study_plans (id, user_id, exam_id, title, created_at) VALUES (?, ?, ?, ?, ?)",
			p.ID, p.UserID, p.ExamID, p.Title, p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import plan %d: %w", p.ID, err)
		}

		for _, t := range p.Tasks {
			_, err := s.db.Exec(
				"INSERT INTO plan_tasks (plan_id, topic_id, title, due_date, done) VALUES (?, ?, ?, ?, ?)",
				p.ID, t.TopicID, t.Title, t.DueDate, t.Done)
			if err != nil {
				return fmt.Errorf("failed to import task for plan %d: %w", p.ID, err)
			}
		}
	}
	return nil
}
