package repository

import (
	"database/sql"
	"time"

	"github.com/aakash391999/ExamSphare-sub000/internal/database"
	"github.com/aakash391999/ExamSphare-sub000/internal/models"
)

// PlanRepository handles study plan database operations
type PlanRepository struct {
	db *database.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *database.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// CreatePlan stores a new study plan
func (r *PlanRepository) CreatePlan(userID int64, examID, title string) (*models.StudyPlan, error) {
	id, err := r.db.ExecReturningID(
		"INSERT INTO study_plans (user_id, exam_id, title) VALUES (?, ?, ?)",
		userID, examID, title,
	)
	if err != nil {
		return nil, err
	}
	return r.GetPlan(id)
}

// GetPlan retrieves a plan by id, or nil when not found
func (r *PlanRepository) GetPlan(id int64) (*models.StudyPlan, error) {
	plan := &models.StudyPlan{}
	err := r.db.QueryRow(
		"SELECT id, user_id, exam_id, title, created_at FROM study_plans WHERE id = ?",
		id,
	).Scan(&plan.ID, &plan.UserID, &plan.ExamID, &plan.Title, &plan.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// ListPlans retrieves a user's study plans
func (r *PlanRepository) ListPlans(userID int64) ([]models.StudyPlan, error) {
	rows, err := r.db.Query(
		"SELECT id, user_id, exam_id, title, created_at FROM study_plans WHERE user_id = ? ORDER BY created_at, id",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []models.StudyPlan
	for rows.Next() {
		var p models.StudyPlan
		if err := rows.Scan(&p.ID, &p.UserID, &p.ExamID, &p.Title, &p.CreatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// AddTask stores a new task within a plan
func (r *PlanRepository) AddTask(planID int64, topicID, title string, dueDate time.Time) (*models.PlanTask, error) {
	id, err := r.db.ExecReturningID(
		"INSERT INTO plan_tasks (plan_id, topic_id, title, due_date) VALUES (?, ?, ?, ?)",
		planID, topicID, title, dueDate,
	)
	if err != nil {
		return nil, err
	}

	task := &models.PlanTask{}
	err = r.db.QueryRow(
		"SELECT id, plan_id, topic_id, title, due_date, done FROM plan_tasks WHERE id = ?",
		id,
	).Scan(&task.ID, &task.PlanID, &task.TopicID, &task.Title, &task.DueDate, &task.Done)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks retrieves the tasks of a plan, by due date
func (r *PlanRepository) ListTasks(planID int64) ([]models.PlanTask, error) {
	rows, err := r.db.Query(
		"SELECT id, plan_id, topic_id, title, due_date, done FROM plan_tasks WHERE plan_id = ? ORDER BY due_date, id",
		planID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

// ListTasksDueOn retrieves a user's plan tasks due within [from, to)
func (r *PlanRepository) ListTasksDueOn(userID int64, from, to time.Time) ([]models.PlanTask, error) {
	rows, err := r.db.Query(`
		SELECT t.id, t.plan_id, t.topic_id, t.title, t.due_date, t.done
		FROM plan_tasks t
		JOIN study_plans p ON p.id = t.plan_id
		WHERE p.user_id = ? AND t.due_date >= ? AND t.due_date < ?
		ORDER BY t.due_date, t.id`,
		userID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

// ListUserIDsWithTasksDueOn returns ids of users with unfinished tasks due
// within [from, to)
func (r *PlanRepository) ListUserIDsWithTasksDueOn(from, to time.Time) ([]int64, error) {
	rows, err := r.db.Query(`
		SELECT DISTINCT p.user_id
		FROM plan_tasks t
		JOIN study_plans p ON p.id = t.plan_id
		WHERE t.done = ? AND t.due_date >= ? AND t.due_date < ?
		ORDER BY p.user_id`,
		false, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SetTaskDone marks a task done or not done
func (r *PlanRepository) SetTaskDone(taskID int64, done bool) error {
	_, err := r.db.Exec("UPDATE plan_tasks SET done = ? WHERE id = ?", done, taskID)
	return err
}

// DeletePlan removes a plan and its tasks
func (r *PlanRepository) DeletePlan(userID, planID int64) error {
	if _, err := r.db.Exec(
		"DELETE FROM plan_tasks WHERE plan_id IN (SELECT id FROM study_plans WHERE id = ? AND user_id = ?)",
		planID, userID,
	); err != nil {
		return err
	}
	_, err := r.db.Exec("DELETE FROM study_plans WHERE id = ? AND user_id = ?", planID, userID)
	return err
}

func scanTasks(rows *sql.Rows) ([]models.PlanTask, error) {
	var tasks []models.PlanTask
	for rows.Next() {
		var t models.PlanTask
		if err := rows.Scan(&t.ID, &t.PlanID, &t.TopicID, &t.Title, &t.DueDate, &t.Done); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
