// Package model はドメインモデルを定義する。
package model

import "time"

// EmploymentType は求人の雇用形態を表す。
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "Full-time"
	EmploymentPartTime   EmploymentType = "Part-time"
	EmploymentInternship EmploymentType = "Internship"
	EmploymentContract   EmploymentType = "Contract"
)

// EmploymentTypes は定義済みの全雇用形態。
var EmploymentTypes = []EmploymentType{
	EmploymentFullTime,
	EmploymentPartTime,
	EmploymentInternship,
	EmploymentContract,
}

// IsValid はEmploymentTypeが定義済みの値かどうかを返す。
func (t EmploymentType) IsValid() bool {
	for _, v := range EmploymentTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Category は求人のカテゴリを表す。固定の6分野のみ。
type Category string

const (
	CategorySoftwareDev   Category = "Software Development"
	CategoryWebDev        Category = "Web Development"
	CategoryDataScience   Category = "Data Science"
	CategoryAIML          Category = "AI & Machine Learning"
	CategoryCyberSecurity Category = "Cyber Security"
	CategoryUIUXDesign    Category = "UI/UX Design"
)

// Categories は定義済みの全カテゴリ。
var Categories = []Category{
	CategorySoftwareDev,
	CategoryWebDev,
	CategoryDataScience,
	CategoryAIML,
	CategoryCyberSecurity,
	CategoryUIUXDesign,
}

// IsValid はCategoryが定義済みの値かどうかを返す。
func (c Category) IsValid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Job は採用担当者が作成した求人を表す。
// 編集フローは存在せず、作成後は削除のみ可能。
// CreatedByは作成時点で役割がrecruiterだったユーザーを必ず参照する。
type Job struct {
	ID             string
	Title          string
	Company        string
	Location       string
	EmploymentType EmploymentType
	Category       Category
	Salary         string
	Description    string
	CreatedBy      string
	CreatedAt      time.Time
}
