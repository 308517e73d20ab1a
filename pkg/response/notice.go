package response

type NoticeVariant string

const (
	NoticeDefault     NoticeVariant = "default"
	NoticeDestructive NoticeVariant = "destructive"
)

// Notice is a transient notification shown once by the browser.
type Notice struct {
	Variant     NoticeVariant `json:"variant"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
}

func SuccessNotice(title, description string) *Notice {
	return &Notice{Variant: NoticeDefault, Title: title, Description: description}
}

func ErrorNotice(description string) *Notice {
	return &Notice{Variant: NoticeDestructive, Title: "Erreur", Description: description}
}
