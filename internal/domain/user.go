package domain

// User 后台用户；authorities 为权限名列表（hr_user_authority）
type User struct {
	ID          int64    `json:"id,omitempty" db:"id"`
	Login       string   `json:"login" db:"login" validate:"required,max=50"`
	FirstName   string   `json:"firstName" db:"first_name" validate:"max=50"`
	LastName    string   `json:"lastName" db:"last_name" validate:"max=50"`
	Email       string   `json:"email" db:"email" validate:"omitempty,email,max=191"`
	Activated   bool     `json:"activated" db:"activated"`
	LangKey     string   `json:"langKey" db:"lang_key" validate:"max=10"`
	Authorities []string `json:"authorities"`
}

func (u User) EntityID() int64 { return u.ID }

func (u User) WithID(id int64) User { u.ID = id; return u }
