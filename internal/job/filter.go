package job

import (
	"strings"

	"github.com/hitoshi/jobboard/internal/model"
)

// FilterAll は雇用形態・カテゴリの「絞り込みなし」を表す番兵値。
// 空文字列も同様に扱う。
const FilterAll = "all"

// FilterCriteria は求人一覧の絞り込み条件を表す。
// 各条件は独立した述語で、すべてAND結合される。
// ゼロ値のFilterCriteriaは全件を通過させる。
type FilterCriteria struct {
	// Text はタイトルまたは会社名に対する部分一致（大文字小文字を区別しない）。
	Text string
	// Location は勤務地に対する部分一致（大文字小文字を区別しない）。
	Location string
	// Type は雇用形態に対する完全一致。"all"または空文字列で絞り込みなし。
	Type string
	// Category はカテゴリに対する完全一致。"all"または空文字列で絞り込みなし。
	Category string
}

// Filter は求人一覧を条件で絞り込む。純粋関数で、入力の順序を保存する。
// 条件の適用順は結果に影響しない（各述語が独立なため）。
// 一致する求人がない場合は空スライスを返す（nilではない）。
func Filter(jobs []*model.Job, c FilterCriteria) []*model.Job {
	results := make([]*model.Job, 0, len(jobs))
	for _, j := range jobs {
		if matches(j, c) {
			results = append(results, j)
		}
	}
	return results
}

// matches は求人が全述語を満たすかどうかを判定する。
func matches(j *model.Job, c FilterCriteria) bool {
	if text := strings.ToLower(strings.TrimSpace(c.Text)); text != "" {
		title := strings.ToLower(j.Title)
		company := strings.ToLower(j.Company)
		if !strings.Contains(title, text) && !strings.Contains(company, text) {
			return false
		}
	}

	if loc := strings.ToLower(strings.TrimSpace(c.Location)); loc != "" {
		if !strings.Contains(strings.ToLower(j.Location), loc) {
			return false
		}
	}

	if !sentinelOrEqual(c.Type, string(j.EmploymentType)) {
		return false
	}

	if !sentinelOrEqual(c.Category, string(j.Category)) {
		return false
	}

	return true
}

// sentinelOrEqual は条件が番兵値（"all"または空）か、値と一致するかを判定する。
// 完全一致の比較は大文字小文字を区別しない。
func sentinelOrEqual(criterion, value string) bool {
	criterion = strings.TrimSpace(criterion)
	if criterion == "" || strings.EqualFold(criterion, FilterAll) {
		return true
	}
	return strings.EqualFold(criterion, value)
}
