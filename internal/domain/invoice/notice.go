package invoice

// NoticeLevel is the tone of a user-visible notification.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
)

// Notice is the notification produced by a successful cart mutation.
// Rejected mutations are reported as errors instead.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

func success(msg string) Notice { return Notice{Level: NoticeSuccess, Message: msg} }
func info(msg string) Notice    { return Notice{Level: NoticeInfo, Message: msg} }
