package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Discipline groups subjects (e.g. "Mathematics" -> "Algebra", "Geometry").
type Discipline struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;size:70"`
	Tag  string `json:"tag" gorm:"not null;uniqueIndex;size:100"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Subject struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"not null;size:70"`
	Tag          string `json:"tag" gorm:"not null;uniqueIndex;size:100"`
	DisciplineID uint   `json:"discipline_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Discipline Discipline `json:"discipline" gorm:"foreignKey:DisciplineID"`
}

// Problem is a published multiple-choice problem. Reference data: the engine
// reads problems but never mutates them.
type Problem struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	SubjectID uint   `json:"subject_id" gorm:"not null;index"`
	Index     int    `json:"index" gorm:"not null;index"` // ordinal within subject, 1-based
	Statement string `json:"statement" gorm:"type:text;not null"`

	// Option texts in presentation order; tags are derived ('a', 'b', ...).
	Options datatypes.JSONSlice[string] `json:"options" gorm:"type:jsonb"`

	CorrectOption string  `json:"correct_option" gorm:"not null;size:1"`
	AnswerNote    string  `json:"answer_note" gorm:"type:text"`
	Value         int     `json:"value" gorm:"not null;default:50"`
	Chapter       *string `json:"chapter" gorm:"size:400"`
	Special       bool    `json:"special" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Subject Subject `json:"subject" gorm:"foreignKey:SubjectID"`
}

// defaultOptionTags is used when a problem carries no explicit option texts.
var defaultOptionTags = []string{"a", "b", "c", "d", "e"}

// OptionTags returns the valid option tags for the problem.
func (p *Problem) OptionTags() []string {
	if len(p.Options) == 0 {
		return defaultOptionTags
	}
	tags := make([]string, len(p.Options))
	for i := range p.Options {
		tags[i] = string(rune('a' + i))
	}
	return tags
}

// HasOption reports whether tag is a valid option for the problem.
func (p *Problem) HasOption(tag string) bool {
	for _, t := range p.OptionTags() {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// FormatStatement renders the problem body with lettered variants, the shape
// posted to a group when a problem is published. The last problem of a
// subject is tagged #last; position within the subject is the caller's
// knowledge, so it comes in as a flag.
func (p *Problem) FormatStatement(hasNext bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>#Problem N%d</b>", p.Index)
	if p.Chapter != nil && *p.Chapter != "" {
		chapter := strings.NewReplacer(" ", "_", ":", "").Replace(*p.Chapter)
		fmt.Fprintf(&b, "\nFrom chapter: #%s", chapter)
	}
	b.WriteString("\n")
	b.WriteString(p.Statement)
	for i, text := range p.Options {
		fmt.Fprintf(&b, "\n%s. %s", strings.ToUpper(string(rune('a'+i))), text)
	}
	if !hasNext {
		b.WriteString("\n#last")
	}
	return b.String()
}

// FormatAnswer renders the answer reveal for a closed problem.
func (p *Problem) FormatAnswer() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>The right choice is %s</b>\n", strings.ToUpper(p.CorrectOption))
	if p.AnswerNote != "" {
		b.WriteString(p.AnswerNote)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "#Answer of the problem N%d.", p.Index)
	return b.String()
}
