package services

import (
	"errors"
	"fmt"
	"log"

	"golang.org/x/text/language"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrTagNotFound  = errors.New("tag not found")
	ErrUnknownTag   = errors.New("unknown tag")
	ErrDuplicateTag = errors.New("tag name already exists")
	ErrInvalidInput = errors.New("invalid input")
)

// Op names one data-access operation. Every failure is reported per Op.
type Op string

const (
	OpFetchTasks           Op = "fetch_tasks"
	OpCreateTask           Op = "create_task"
	OpUpdateTask           Op = "update_task"
	OpToggleTaskCompletion Op = "toggle_task_completion"
	OpToggleTaskImportant  Op = "toggle_task_important"
	OpDeleteTask           Op = "delete_task"
	OpFetchTags            Op = "fetch_tags"
	OpCreateTag            Op = "create_tag"
	OpUpdateTag            Op = "update_tag"
	OpDeleteTag            Op = "delete_tag"
)

type OpError struct {
	Op  Op
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Message is the user-facing text for the failed operation in the given
// locale. It never leaks the underlying cause.
func (e *OpError) Message(locale language.Tag) string {
	return OpMessage(e.Op, locale)
}

func opFailed(op Op, err error) error {
	log.Printf("❌ %s failed: %v", op, err)
	return &OpError{Op: op, Err: err}
}

var (
	supportedLocales = []language.Tag{language.English, language.Japanese}
	localeMatcher    = language.NewMatcher(supportedLocales)
)

var messages = map[language.Tag]map[Op]string{
	language.English: {
		OpFetchTasks:           "Failed to fetch tasks",
		OpCreateTask:           "Failed to create task",
		OpUpdateTask:           "Failed to update task",
		OpToggleTaskCompletion: "Failed to toggle task completion",
		OpToggleTaskImportant:  "Failed to toggle task importance",
		OpDeleteTask:           "Failed to delete task",
		OpFetchTags:            "Failed to fetch tags",
		OpCreateTag:            "Failed to create tag",
		OpUpdateTag:            "Failed to update tag",
		OpDeleteTag:            "Failed to delete tag",
	},
	language.Japanese: {
		OpFetchTasks:           "タスクの取得に失敗しました",
		OpCreateTask:           "タスクの作成に失敗しました",
		OpUpdateTask:           "タスクの更新に失敗しました",
		OpToggleTaskCompletion: "タスクの完了状態の切り替えに失敗しました",
		OpToggleTaskImportant:  "タスクの重要フラグの切り替えに失敗しました",
		OpDeleteTask:           "タスクの削除に失敗しました",
		OpFetchTags:            "タグの取得に失敗しました",
		OpCreateTag:            "タグの作成に失敗しました",
		OpUpdateTag:            "タグの更新に失敗しました",
		OpDeleteTag:            "タグの削除に失敗しました",
	},
}

// MatchLocale picks the best supported locale for the given preferences,
// each either a BCP 47 tag or an Accept-Language header value. Empty and
// unparsable values are skipped; English is the fallback.
func MatchLocale(preferences ...string) language.Tag {
	var desired []language.Tag
	for _, pref := range preferences {
		if pref == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil {
			continue
		}
		desired = append(desired, tags...)
	}

	_, index, confidence := localeMatcher.Match(desired...)
	if confidence == language.No {
		return language.English
	}
	return supportedLocales[index]
}

func OpMessage(op Op, locale language.Tag) string {
	catalog, ok := messages[locale]
	if !ok {
		catalog = messages[MatchLocale(locale.String())]
	}
	if msg, ok := catalog[op]; ok {
		return msg
	}
	return messages[language.English][op]
}

// ErrorMessage returns the localized message for err if it is an OpError,
// or a generic message otherwise.
func ErrorMessage(err error, locale language.Tag) string {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Message(locale)
	}
	if locale == language.Japanese {
		return "操作に失敗しました"
	}
	return "Operation failed"
}
