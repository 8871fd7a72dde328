package media

const (
	ContentTypeApplicationJson = "application/json"
)
