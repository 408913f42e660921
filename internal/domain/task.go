package domain

// Task 任务
type Task struct {
	ID          int64  `json:"id,omitempty" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
}

func (t Task) EntityID() int64 { return t.ID }

func (t Task) WithID(id int64) Task { t.ID = id; return t }

// TaskRef is how a Job lists its tasks: id plus the display title.
type TaskRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title,omitempty"`
}
