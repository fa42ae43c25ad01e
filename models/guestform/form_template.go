package guestform

import (
	"time"
)

// FormTemplate is a reusable guest check-in form definition that
// properties can be assigned to.
type FormTemplate struct {
	ID     uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string      `gorm:"type:varchar(255);not null" json:"name"`
	Fields []FormField `gorm:"foreignKey:FormTemplateID" json:"fields"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the FormTemplate model
func (FormTemplate) TableName() string {
	return "form_templates"
}

// Field types accepted by the form renderer.
const (
	FieldTypeText     = "text"
	FieldTypeTextarea = "textarea"
	FieldTypeEmail    = "email"
	FieldTypeDate     = "date"
	FieldTypeNumber   = "number"
	FieldTypeRadio    = "radio"
	FieldTypeCheckbox = "checkbox"
	FieldTypeFile     = "file"
)

// FormField is one question on a template. Options holds a JSON array
// of choices for radio/checkbox fields.
type FormField struct {
	ID             uint `gorm:"primaryKey;autoIncrement" json:"id"`
	FormTemplateID uint `gorm:"not null;index" json:"form_template_id"`

	Label      string  `gorm:"type:varchar(255);not null" json:"label"`
	FieldType  string  `gorm:"type:varchar(20);not null" json:"field_type"`
	Options    *string `gorm:"type:jsonb" json:"options,omitempty"`
	IsRequired bool    `gorm:"not null;default:true" json:"is_required"`
	SortOrder  int     `gorm:"not null;default:0" json:"sort_order"`
}

// TableName sets the table name for the FormField model
func (FormField) TableName() string {
	return "form_fields"
}
