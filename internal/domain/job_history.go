package domain

import "time"

// Language JobHistory.language 枚举
type Language string

const (
	LanguageFrench  Language = "FRENCH"
	LanguageEnglish Language = "ENGLISH"
	LanguageSpanish Language = "SPANISH"
)

// Languages in the order the edit form offers them.
var Languages = []Language{LanguageFrench, LanguageEnglish, LanguageSpanish}

func (l Language) Valid() bool {
	for _, v := range Languages {
		if l == v {
			return true
		}
	}
	return false
}

// JobHistory 任职历史
type JobHistory struct {
	ID         int64      `json:"id,omitempty" db:"id"`
	StartDate  *time.Time `json:"startDate" db:"start_date"`
	EndDate    *time.Time `json:"endDate" db:"end_date"`
	Language   Language   `json:"language,omitempty" db:"language" validate:"omitempty,oneof=FRENCH ENGLISH SPANISH"`
	Job        *Ref       `json:"job" db:"job_id"`
	Department *Ref       `json:"department" db:"department_id"`
	Employee   *Ref       `json:"employee" db:"employee_id"`
}

func (h JobHistory) EntityID() int64 { return h.ID }

func (h JobHistory) WithID(id int64) JobHistory { h.ID = id; return h }
