// Package model はドメインモデルを定義する。
package model

import "time"

// ApplicationStatus は応募の状態を表す。
// 現行の書き込みは"applied"のみだが、将来の状態遷移のために閉じた列挙型として予約する。
type ApplicationStatus string

const (
	// StatusApplied は応募済み状態。
	StatusApplied ApplicationStatus = "applied"
)

// IsValid はApplicationStatusが定義済みの値かどうかを返す。
func (s ApplicationStatus) IsValid() bool {
	return s == StatusApplied
}

// Application は求職者の求人への応募を表す。
// IDは求人IDと応募者IDから決定的に導出される複合ID（"<jobID>_<applicantID>"）で、
// トランザクションなしで(求人, 応募者)ペアごとに高々1件の応募を保証する。
// レコードの存在がそのまま「現在応募中」を意味し、取り下げはレコードを削除する。
// 応募時点の求人タイトルと会社名を非正規化して保持する。
type Application struct {
	ID             string
	JobID          string
	JobTitle       string
	Company        string
	RecruiterID    string
	ApplicantID    string
	ApplicantEmail string
	Status         ApplicationStatus
	AppliedAt      time.Time
}

// ApplicationID は(求人ID, 応募者ID)ペアから複合応募IDを導出する。
// 同一の入力に対して常に同一のIDを返す。
func ApplicationID(jobID, applicantID string) string {
	return jobID + "_" + applicantID
}
