package board

import (
	"fmt"
	"net/url"

	"golang.org/x/text/language"
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Event names a completed board action worth announcing to the user.
type Event string

const (
	EventTaskCreated Event = "task_created"
	EventTaskUpdated Event = "task_updated"
	EventTaskDeleted Event = "task_deleted"
	EventTagCreated  Event = "tag_created"
	EventTagUpdated  Event = "tag_updated"
	EventTagDeleted  Event = "tag_deleted"
)

type Notice struct {
	Kind   NoticeKind `json:"kind"`
	Title  string     `json:"title"`
	Detail string     `json:"detail"`
}

type noticeText struct {
	title  string
	detail string
}

var notices = map[language.Tag]map[Event]noticeText{
	language.English: {
		EventTaskCreated: {"Task added", "%q was added."},
		EventTaskUpdated: {"Task updated", "%q was updated."},
		EventTaskDeleted: {"Task deleted", "%q was deleted."},
		EventTagCreated:  {"Tag added", "Tag %q was added."},
		EventTagUpdated:  {"Tag updated", "Tag %q was updated."},
		EventTagDeleted:  {"Tag deleted", "Tag %q was deleted."},
	},
	language.Japanese: {
		EventTaskCreated: {"タスクが追加されました", "「%s」が正常に追加されました。"},
		EventTaskUpdated: {"タスクが更新されました", "「%s」が正常に更新されました。"},
		EventTaskDeleted: {"タスクが削除されました", "「%s」が削除されました。"},
		EventTagCreated:  {"タグが追加されました", "「%s」タグが正常に追加されました。"},
		EventTagUpdated:  {"タグが更新されました", "「%s」タグが正常に更新されました。"},
		EventTagDeleted:  {"タグが削除されました", "「%s」タグが削除されました。"},
	},
}

var errorTitles = map[language.Tag]string{
	language.English:  "Error",
	language.Japanese: "エラー",
}

// Success builds the confirmation shown after event completed for subject,
// a task title or tag name.
func Success(event Event, subject string, locale language.Tag) Notice {
	text, ok := catalogFor(notices, locale)[event]
	if !ok {
		return Notice{Kind: NoticeSuccess, Title: string(event)}
	}
	return Notice{
		Kind:   NoticeSuccess,
		Title:  text.title,
		Detail: fmt.Sprintf(text.detail, subject),
	}
}

func Failure(message string, locale language.Tag) Notice {
	return Notice{
		Kind:   NoticeError,
		Title:  catalogFor(errorTitles, locale),
		Detail: message,
	}
}

const (
	paramNoticeKind   = "notice"
	paramNoticeTitle  = "notice_title"
	paramNoticeDetail = "notice_detail"
)

// Encode adds the notice to v so it survives a redirect.
func (n Notice) Encode(v url.Values) {
	v.Set(paramNoticeKind, string(n.Kind))
	v.Set(paramNoticeTitle, n.Title)
	if n.Detail != "" {
		v.Set(paramNoticeDetail, n.Detail)
	}
}

// NoticeFromValues reads a notice left by Encode. ok is false when none is
// present.
func NoticeFromValues(v url.Values) (Notice, bool) {
	kind := NoticeKind(v.Get(paramNoticeKind))
	if kind != NoticeSuccess && kind != NoticeError {
		return Notice{}, false
	}
	return Notice{
		Kind:   kind,
		Title:  v.Get(paramNoticeTitle),
		Detail: v.Get(paramNoticeDetail),
	}, true
}

// RedirectURL is the board URL for s carrying n as a flash message.
func RedirectURL(path string, s State, n Notice) string {
	v := s.Values()
	n.Encode(v)
	return path + "?" + v.Encode()
}
