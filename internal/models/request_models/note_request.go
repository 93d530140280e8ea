package request_models

type NoteRequest struct {
	Content string `json:"content" binding:"required,max=20000"`
}
