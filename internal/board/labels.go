package board

import (
	"taskboard/internal/models"

	"golang.org/x/text/language"
)

// Labels is the fixed UI text of the board page.
type Labels struct {
	Lang            string
	AppTitle        string
	Search          string
	Filters         string
	FilterAll       string
	FilterImportant string
	FilterToday     string
	FilterScheduled string
	Tags            string
	TabAll          string
	TabPending      string
	TabCompleted    string
	NewTask         string
	Title           string
	Description     string
	DueDate         string
	Priority        string
	Important       string
	TagNames        string
	Save            string
	Add             string
	Edit            string
	Delete          string
	Complete        string
	Reopen          string
	NewTag          string
	TagName         string
	TagColor        string
	Empty           string
	Priorities      map[models.Priority]string
}

var labels = map[language.Tag]Labels{
	language.English: {
		Lang:            "en",
		AppTitle:        "Task board",
		Search:          "Search tasks",
		Filters:         "Filters",
		FilterAll:       "All",
		FilterImportant: "Important",
		FilterToday:     "Today",
		FilterScheduled: "Scheduled",
		Tags:            "Tags",
		TabAll:          "All",
		TabPending:      "Pending",
		TabCompleted:    "Completed",
		NewTask:         "New task",
		Title:           "Title",
		Description:     "Description",
		DueDate:         "Due date",
		Priority:        "Priority",
		Important:       "Important",
		TagNames:        "Tags (comma separated)",
		Save:            "Save",
		Add:             "Add",
		Edit:            "Edit",
		Delete:          "Delete",
		Complete:        "Complete",
		Reopen:          "Reopen",
		NewTag:          "New tag",
		TagName:         "Tag name",
		TagColor:        "Color",
		Empty:           "No tasks",
		Priorities: map[models.Priority]string{
			models.PriorityLow:    "Low",
			models.PriorityMedium: "Medium",
			models.PriorityHigh:   "High",
		},
	},
	language.Japanese: {
		Lang:            "ja",
		AppTitle:        "タスクボード",
		Search:          "タスクを検索",
		Filters:         "フィルター",
		FilterAll:       "すべて",
		FilterImportant: "重要",
		FilterToday:     "今日",
		FilterScheduled: "予定",
		Tags:            "タグ",
		TabAll:          "すべて",
		TabPending:      "未完了",
		TabCompleted:    "完了済み",
		NewTask:         "新しいタスク",
		Title:           "タイトル",
		Description:     "説明",
		DueDate:         "期限",
		Priority:        "優先度",
		Important:       "重要",
		TagNames:        "タグ (カンマ区切り)",
		Save:            "保存",
		Add:             "追加",
		Edit:            "編集",
		Delete:          "削除",
		Complete:        "完了",
		Reopen:          "未完了に戻す",
		NewTag:          "新しいタグ",
		TagName:         "タグ名",
		TagColor:        "色",
		Empty:           "タスクがありません",
		Priorities: map[models.Priority]string{
			models.PriorityLow:    "低",
			models.PriorityMedium: "中",
			models.PriorityHigh:   "高",
		},
	},
}

func LabelsFor(locale language.Tag) Labels {
	return catalogFor(labels, locale)
}
